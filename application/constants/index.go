package constants

import "time"

// response codes
// these consist of 4 digit numbers
//
// the 1st 3 are randomly generated but represent specific scenarios
// 4th indicates if the response requires user interactions through a dialog box. 0 means it does not require. 1 means it requires.

var SESSION_TERMINATED uint = 6171       // clear stored credentials and take the user to the login page
var LIVENESS_LOCKOUT uint = 4271         // liveness attempts exhausted, session has been terminated
var SPOOFING_SUSPECTED uint = 4281       // spoofing heuristic fired, session has been terminated
var FACE_NOT_RECOGNISED uint = 4290      // face did not match the registered employee
var FACE_NOT_REGISTERED uint = 4301      // take the user to the face registration page
var VERIFICATION_IN_PROGRESS uint = 3140 // keep polling the run

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

const (
	ActionTimeIn       = "time_in"
	ActionTimeOut      = "time_out"
	ActionRegisterFace = "register_face"
)

var VERIFICATION_ACTIONS = []string{ActionTimeIn, ActionTimeOut, ActionRegisterFace}

// Realtime event types.
const (
	EventSessionTerminated     = "session.terminated"
	EventVerificationCompleted = "verification.completed"
	EventAttendanceRecorded    = "attendance.recorded"
)

const ADMIN_CHANNEL = "admin"

func EmployeeChannel(userID string) string {
	return "employee:" + userID
}

var FACE_DESCRIPTOR_LENGTH = 128

var STANDARD_SHIFT = 8 * time.Hour

var FINISHED_RUN_TTL = 10 * time.Minute

var MAX_PAGE_LIMIT int64 = 100

var SUPPORT_EMAIL = "hr-support@hrms.io"
