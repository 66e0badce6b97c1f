package controller

import (
	"errors"
	"net/http"

	apperrors "hrms.io/application/appErrors"
	"hrms.io/application/controller/dto"
	"hrms.io/application/interfaces"
	auth_usecases "hrms.io/application/usecases/auth"
	"hrms.io/entities"
	"hrms.io/infrastructure/auth"
	server_response "hrms.io/infrastructure/serverResponse"
	"hrms.io/infrastructure/validator"
)

func profile(session *entities.Session) dto.ProfileDTO {
	return dto.ProfileDTO{
		UserID:     session.UserID,
		EmployeeID: session.EmployeeID,
		Email:      session.Email,
		FirstName:  session.FirstName,
		LastName:   session.LastName,
		FullName:   session.FullName(),
		Role:       session.Role,
	}
}

func (c *Controller) CreateSession(ctx *interfaces.ApplicationContext[dto.CreateSessionDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr, ctx.DeviceID)
		return
	}

	session, err := c.Sessions.Create(ctx.Context(), ctx.Body.Token, ctx.DeviceID, ctx.UserAgent)
	if err != nil {
		switch {
		case errors.Is(err, auth_usecases.ErrStoreUnavailable):
			apperrors.ExternalDependencyError(ctx.Ctx, "redis", "500", err, ctx.DeviceID)
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTamperedToken), errors.Is(err, auth.ErrInvalidClaims),
			errors.Is(err, auth_usecases.ErrDeviceMismatch), errors.Is(err, auth_usecases.ErrSessionNotFound),
			errors.Is(err, auth_usecases.ErrMissingCredentials):
			apperrors.AuthenticationError(ctx.Ctx, err.Error(), ctx.DeviceID)
		default:
			apperrors.FatalServerError(ctx.Ctx, err, ctx.DeviceID)
		}
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "session created", dto.SessionResponse{
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
		Profile:   profile(session),
	}, nil, nil, nil)
}

func (c *Controller) GetSession(ctx *interfaces.ApplicationContext[any]) {
	session := sessionFrom(ctx)
	if session == nil {
		apperrors.AuthenticationError(ctx.Ctx, auth_usecases.ErrSessionNotFound.Error(), ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "session fetched", dto.SessionResponse{
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
		Profile:   profile(session),
	}, nil, nil, nil)
}

func (c *Controller) DeleteSession(ctx *interfaces.ApplicationContext[any]) {
	session := sessionFrom(ctx)
	if session == nil {
		apperrors.AuthenticationError(ctx.Ctx, auth_usecases.ErrSessionNotFound.Error(), ctx.DeviceID)
		return
	}
	if err := c.Sessions.Terminate(ctx.Context(), session, "signed_out"); err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil, ctx.DeviceID)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "signed out", nil, nil, nil, nil)
}
