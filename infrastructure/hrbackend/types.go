package hrbackend

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedResponse = errors.New("hr backend returned a malformed response")
	ErrUnavailable       = errors.New("hr backend is unavailable")
	ErrRejected          = errors.New("hr backend rejected the request")
	ErrFaceNotRegistered = errors.New("no face is registered for this employee")
)

// APIError carries the status and message of a 4xx reply.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hr backend replied %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrRejected
}

type VerifyFaceRequest struct {
	EmployeeID string    `json:"employeeId" validate:"required"`
	Descriptor []float32 `json:"descriptor" validate:"descriptor"`
	Action     string    `json:"action" validate:"verification_action"`
}

type RegisterFaceRequest struct {
	EmployeeID string    `json:"employeeId" validate:"required"`
	Descriptor []float32 `json:"descriptor" validate:"descriptor"`
}

type clockRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
}

// envelope is the backend's {success, message, data} wrapper.
type envelope[T any] struct {
	Success *bool  `json:"success" validate:"required"`
	Message string `json:"message"`
	Data    *T     `json:"data"`
}

type faceMatchPayload struct {
	Match    *bool    `json:"match" validate:"required"`
	Distance *float64 `json:"distance" validate:"omitempty,gte=0"`
}
