package entities

import (
	"time"

	"hrms.io/application/utils"
)

// VerificationLog is the audit trail of one completed liveness run.
type VerificationLog struct {
	ID         string  `bson:"_id" json:"id"`
	RunID      string  `bson:"runID" json:"runID"`
	SessionID  string  `bson:"sessionID" json:"sessionID"`
	UserID     string  `bson:"userID" json:"userID"`
	EmployeeID string  `bson:"employeeID" json:"employeeID"`
	Action     string  `bson:"action" json:"action"`
	Status     string  `bson:"status" json:"status"`
	Reason     string  `bson:"reason" json:"reason"`
	SpoofCheck string  `bson:"spoofCheck" json:"spoofCheck,omitempty"`
	Attempts   int     `bson:"attempts" json:"attempts"`
	Duration   int64   `bson:"duration" json:"duration"` // milliseconds
	DeviceName string  `bson:"deviceName" json:"deviceName"`
	UserAgent  string  `bson:"userAgent" json:"userAgent"`
	IPAddress  string  `bson:"ipAddress" json:"ipAddress"`
	Distance   float64 `bson:"distance" json:"distance,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model VerificationLog) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateUULDString()
		}
	}
	model.UpdatedAt = now
	return &model
}
