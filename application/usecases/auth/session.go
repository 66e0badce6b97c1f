package auth_usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hrms.io/application/constants"
	"hrms.io/application/utils"
	"hrms.io/entities"
	"hrms.io/infrastructure/auth"
	"hrms.io/infrastructure/cryptography"
	"hrms.io/infrastructure/logger"
	"hrms.io/infrastructure/realtime"
)

var (
	ErrSessionNotFound    = errors.New("this session has expired")
	ErrDeviceMismatch     = errors.New("session belongs to another device")
	ErrStoreUnavailable   = errors.New("session store is unavailable")
	ErrMissingCredentials = errors.New("missing auth token")
)

type SessionStore interface {
	CreateEntry(ctx context.Context, key string, payload interface{}, ttl time.Duration) bool
	FindOneByteArray(ctx context.Context, key string) *[]byte
	DeleteOne(ctx context.Context, key string) bool
}

type EventPublisher interface {
	Publish(ctx context.Context, channel string, event realtime.Event) error
}

type SessionService struct {
	Store  SessionStore
	Events EventPublisher
	Now    func() time.Time
}

func NewSessionService(store SessionStore, events EventPublisher) *SessionService {
	return &SessionService{Store: store, Events: events, Now: time.Now}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Create exchanges an HR backend token for a server-side session that lives
// until the token expires.
func (s *SessionService) Create(ctx context.Context, token string, deviceID string, userAgent string) (*entities.Session, error) {
	if token == "" {
		return nil, ErrMissingCredentials
	}
	claims, err := auth.ParseClaims(token)
	if err != nil {
		return nil, err
	}
	if claims.DeviceID != "" && claims.DeviceID != deviceID {
		logger.Warning("client created a session using a device id different from that in the token", logger.LoggerOptions{
			Key:  "token device id",
			Data: claims.DeviceID,
		}, logger.LoggerOptions{
			Key:  "request device id",
			Data: deviceID,
		})
		return nil, ErrDeviceMismatch
	}
	now := s.Now()
	expiresAt := time.Unix(claims.ExpiresAt, 0)
	if !expiresAt.After(now) {
		return nil, ErrSessionNotFound
	}
	tokenHash, err := cryptography.TokenHasher.HashString(token, nil)
	if err != nil {
		return nil, err
	}
	session := entities.Session{
		ID:         utils.GenerateUULDString(),
		UserID:     claims.UserID,
		EmployeeID: claims.EmployeeID,
		Email:      claims.Email,
		FirstName:  claims.FirstName,
		LastName:   claims.LastName,
		Role:       claims.Role,
		DeviceID:   deviceID,
		UserAgent:  userAgent,
		TokenHash:  string(tokenHash),
		IssuedAt:   time.Unix(claims.IssuedAt, 0),
		ExpiresAt:  expiresAt,
	}
	data, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	if !s.Store.CreateEntry(ctx, sessionKey(session.ID), data, expiresAt.Sub(now)) {
		return nil, ErrStoreUnavailable
	}
	logger.Info("session created", logger.LoggerOptions{
		Key:  "userID",
		Data: session.UserID,
	}, logger.LoggerOptions{
		Key:  "sessionID",
		Data: session.ID,
	})
	return &session, nil
}

func (s *SessionService) Find(ctx context.Context, sessionID string) (*entities.Session, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	data := s.Store.FindOneByteArray(ctx, sessionKey(sessionID))
	if data == nil {
		return nil, ErrSessionNotFound
	}
	var session entities.Session
	if err := json.Unmarshal(*data, &session); err != nil {
		logger.Error("stored session could not be decoded", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "sessionID",
			Data: sessionID,
		})
		return nil, ErrSessionNotFound
	}
	if session.Expired(s.Now()) {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// Terminate removes the session and tells every open client of the user to
// drop its credentials. Calling it for an already removed session only
// republishes the event.
func (s *SessionService) Terminate(ctx context.Context, session *entities.Session, reason string) error {
	deleted := s.Store.DeleteOne(ctx, sessionKey(session.ID))
	logger.Info("session terminated", logger.LoggerOptions{
		Key:  "sessionID",
		Data: session.ID,
	}, logger.LoggerOptions{
		Key:  "reason",
		Data: reason,
	}, logger.LoggerOptions{
		Key:  "deleted",
		Data: deleted,
	})
	if s.Events == nil {
		return nil
	}
	event := realtime.Event{
		Type: constants.EventSessionTerminated,
		Payload: map[string]any{
			"sessionID":     session.ID,
			"reason":        reason,
			"response_code": constants.SESSION_TERMINATED,
		},
	}
	return s.Events.Publish(ctx, constants.EmployeeChannel(session.UserID), event)
}
