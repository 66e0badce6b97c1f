package dto

import "time"

type CreateSessionDTO struct {
	Token string `json:"token" validate:"required,jwt"`
}

type SessionResponse struct {
	SessionID string     `json:"session_id"`
	ExpiresAt time.Time  `json:"expires_at"`
	Profile   ProfileDTO `json:"profile"`
}

type ProfileDTO struct {
	UserID     string `json:"user_id"`
	EmployeeID string `json:"employee_id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
}
