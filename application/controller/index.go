package controller

import (
	"context"
	"time"

	"hrms.io/application/interfaces"
	"hrms.io/application/liveness"
	verification_usecases "hrms.io/application/usecases/verification"
	"hrms.io/entities"
	"hrms.io/infrastructure/database/repository/mongo"
)

type SessionManager interface {
	Create(ctx context.Context, token string, deviceID string, userAgent string) (*entities.Session, error)
	Terminate(ctx context.Context, session *entities.Session, reason string) error
}

type VerificationManager interface {
	Start(ctx context.Context, session *entities.Session, action string, client verification_usecases.ClientInfo) (*verification_usecases.Run, error)
	PushFrame(runID string, sessionID string, frame liveness.Frame) error
	Status(runID string, sessionID string) (*verification_usecases.RunView, error)
	Cancel(runID string, sessionID string) error
	ReportCameraError(runID string, sessionID string, reason string) error
}

type AttendanceSource interface {
	ListAttendance(ctx context.Context, employeeID string, from time.Time, to time.Time) ([]entities.AttendanceRecord, error)
}

type VerificationLogReader interface {
	FindMany(ctx context.Context, filter map[string]interface{}, opts *mongo.FindOptions) (*[]entities.VerificationLog, error)
	CountDocs(ctx context.Context, filter map[string]interface{}) (int64, error)
}

// Controller holds the services the HTTP handlers call into. It is built
// once at start-up.
type Controller struct {
	Sessions     SessionManager
	Verification VerificationManager
	Attendance   AttendanceSource
	Logs         VerificationLogReader
	Now          func() time.Time
}

func (c *Controller) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// sessionFrom reads the session stored by the session middleware.
func sessionFrom[T any](ctx *interfaces.ApplicationContext[T]) *entities.Session {
	session, _ := ctx.GetContextData("Session").(*entities.Session)
	return session
}
