package auth_usecases

import (
	"context"

	"hrms.io/entities"
	"hrms.io/infrastructure/auth"
	"hrms.io/infrastructure/cryptography"
	"hrms.io/infrastructure/logger"
)

// UserAuthResult represents the result of user authentication
type UserAuthResult struct {
	IsAuthenticated bool
	Session         *entities.Session
	ErrorMessage    string
}

// IsUserSignedIn checks the bearer token against the stored session.
func (s *SessionService) IsUserSignedIn(ctx context.Context, sessionID string, authToken string, deviceID string) UserAuthResult {
	result := UserAuthResult{
		IsAuthenticated: false,
	}

	if authToken == "" || sessionID == "" {
		result.ErrorMessage = ErrMissingCredentials.Error()
		return result
	}

	claims, err := auth.ParseClaims(authToken)
	if err != nil {
		result.ErrorMessage = "this session has expired"
		return result
	}

	session, err := s.Find(ctx, sessionID)
	if err != nil {
		result.ErrorMessage = err.Error()
		return result
	}

	if session.DeviceID != deviceID {
		logger.Warning("client made request using device id different from that in the session", logger.LoggerOptions{
			Key:  "session device id",
			Data: session.DeviceID,
		}, logger.LoggerOptions{
			Key:  "request device id",
			Data: deviceID,
		})
		result.ErrorMessage = "unauthorised access"
		return result
	}

	if claims.UserID != session.UserID {
		logger.Warning("token and session belong to different users", logger.LoggerOptions{
			Key:  "sessionID",
			Data: sessionID,
		})
		result.ErrorMessage = "unauthorised access"
		return result
	}

	if !cryptography.TokenHasher.VerifyHashData(session.TokenHash, authToken) {
		result.ErrorMessage = "this session has expired"
		return result
	}

	result.IsAuthenticated = true
	result.Session = session
	return result
}
