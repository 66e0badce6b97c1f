package auth

// ClaimsData is the typed view of an HR backend access token.
type ClaimsData struct {
	Issuer     string `validate:"required"`
	UserID     string `validate:"required"`
	EmployeeID string `validate:"required"`
	Email      string `validate:"required,email"`
	FirstName  string `validate:"required"`
	LastName   string
	Role       string `validate:"required,oneof=admin employee"`
	DeviceID   string
	ExpiresAt  int64 `validate:"required"`
	IssuedAt   int64 `validate:"required"`
}
