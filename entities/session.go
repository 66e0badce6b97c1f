package entities

import "time"

// Session replaces the browser-stored token and profile with a typed,
// server-side record.
type Session struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userID"`
	EmployeeID string    `json:"employeeID"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Role       string    `json:"role"`
	DeviceID   string    `json:"deviceID"`
	UserAgent  string    `json:"userAgent"`
	TokenHash  string    `json:"tokenHash"`
	IssuedAt   time.Time `json:"issuedAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

func (s *Session) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
