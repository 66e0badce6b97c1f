package entities

import "time"

// AttendanceRecord is one day of an employee's clock events as returned by the HR backend.
type AttendanceRecord struct {
	ID         string     `json:"id" validate:"required"`
	EmployeeID string     `json:"employeeId" validate:"required"`
	Date       string     `json:"date" validate:"required,datetime=2006-01-02"`
	TimeIn     *time.Time `json:"timeIn" validate:"required"`
	TimeOut    *time.Time `json:"timeOut"`
	Status     string     `json:"status" validate:"omitempty,oneof=present late absent on_leave"`
}

func (r *AttendanceRecord) Open() bool {
	return r.TimeOut == nil
}

// FaceMatch is the HR backend's verdict on a submitted descriptor.
type FaceMatch struct {
	Matched  bool    `json:"matched"`
	Distance float64 `json:"distance"`
	Message  string  `json:"message"`
}

type FaceRegistration struct {
	EmployeeID   string    `json:"employeeId" validate:"required"`
	RegisteredAt time.Time `json:"registeredAt" validate:"required"`
}
