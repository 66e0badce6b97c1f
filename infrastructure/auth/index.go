package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt"
	"github.com/spf13/cast"
	"hrms.io/infrastructure/env"
	"hrms.io/infrastructure/logger"
	"hrms.io/infrastructure/validator"
)

var (
	ErrInvalidToken  = errors.New("invalid token used")
	ErrTamperedToken = errors.New("token was not issued by the hr backend")
	ErrInvalidClaims = errors.New("token claims are incomplete")
	// ErrSigningKeyMissing stops an unconfigured deploy from accepting
	// tokens signed with an empty HMAC key.
	ErrSigningKeyMissing = errors.New("JWT_SIGNING_KEY is not set")
)

func SigningKey() ([]byte, error) {
	key := env.String("JWT_SIGNING_KEY", "")
	if key == "" {
		return nil, ErrSigningKeyMissing
	}
	return []byte(key), nil
}

// GenerateAuthToken signs claims the way the HR backend does. Used by tests and local tooling.
func GenerateAuthToken(claimsData ClaimsData) (*string, error) {
	key, err := SigningKey()
	if err != nil {
		return nil, err
	}
	issuer := claimsData.Issuer
	if issuer == "" {
		issuer = env.String("JWT_ISSUER", "hrms")
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":        issuer,
		"userID":     claimsData.UserID,
		"employeeID": claimsData.EmployeeID,
		"exp":        claimsData.ExpiresAt,
		"email":      claimsData.Email,
		"firstName":  claimsData.FirstName,
		"lastName":   claimsData.LastName,
		"role":       claimsData.Role,
		"iat":        claimsData.IssuedAt,
		"deviceID":   claimsData.DeviceID,
	}).SignedString(key)
	if err != nil {
		return nil, err
	}
	return &tokenString, nil
}

func DecodeAuthToken(tokenString string) (*jwt.Token, error) {
	key, err := SigningKey()
	if err != nil {
		logger.Error("refusing to decode jwt", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorSignatureInvalid != 0 {
			return nil, errors.New("invalid token signature used")
		}
		logger.Warning("error decoding jwt", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if !token.Valid {
		logger.Error(ErrInvalidToken.Error())
		return nil, ErrInvalidToken
	}
	return token, nil
}

// ParseClaims decodes the token and converts its claims into ClaimsData,
// rejecting tokens from another issuer or with missing fields.
func ParseClaims(tokenString string) (*ClaimsData, error) {
	token, err := DecodeAuthToken(tokenString)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}
	if cast.ToString(claims["iss"]) != env.String("JWT_ISSUER", "hrms") {
		logger.Warning("attempt to access account with tampered jwt", logger.LoggerOptions{
			Key:  "issuer",
			Data: claims["iss"],
		})
		return nil, ErrTamperedToken
	}
	data := ClaimsData{
		Issuer:     cast.ToString(claims["iss"]),
		UserID:     cast.ToString(claims["userID"]),
		EmployeeID: cast.ToString(claims["employeeID"]),
		Email:      cast.ToString(claims["email"]),
		FirstName:  cast.ToString(claims["firstName"]),
		LastName:   cast.ToString(claims["lastName"]),
		Role:       cast.ToString(claims["role"]),
		DeviceID:   cast.ToString(claims["deviceID"]),
		ExpiresAt:  cast.ToInt64(claims["exp"]),
		IssuedAt:   cast.ToInt64(claims["iat"]),
	}
	if errs := validator.ValidatorInstance.ValidateStruct(data); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidClaims, *errs)
	}
	return &data, nil
}
