package dto

import "hrms.io/application/timesheet"

type AttendanceSummaryResponse struct {
	From    string             `json:"from"`
	To      string             `json:"to"`
	Summary *timesheet.Summary `json:"summary"`
}
