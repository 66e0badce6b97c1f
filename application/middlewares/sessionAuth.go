package middlewares

import (
	"context"
	"strings"

	apperrors "hrms.io/application/appErrors"
	"hrms.io/application/constants"
	"hrms.io/application/interfaces"
	auth_usecases "hrms.io/application/usecases/auth"
)

type SessionAuthenticator interface {
	IsUserSignedIn(ctx context.Context, sessionID string, authToken string, deviceID string) auth_usecases.UserAuthResult
}

// BearerToken strips the "Bearer " prefix from an Authorization header.
func BearerToken(header *string) string {
	if header == nil {
		return ""
	}
	token, found := strings.CutPrefix(*header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

func SessionAuthMiddleware(ctx *interfaces.ApplicationContext[any], sessions SessionAuthenticator) (*interfaces.ApplicationContext[any], bool) {
	sessionID := ctx.GetHeader("X-Session-Id")
	authToken := BearerToken(ctx.GetHeader("Authorization"))
	if sessionID == nil || authToken == "" {
		apperrors.AuthenticationError(ctx.Ctx, "missing auth token", ctx.DeviceID)
		return nil, false
	}

	authResult := sessions.IsUserSignedIn(ctx.Context(), *sessionID, authToken, ctx.DeviceID)
	if !authResult.IsAuthenticated {
		apperrors.SessionTerminatedError(ctx.Ctx, authResult.ErrorMessage, &constants.SESSION_TERMINATED, ctx.DeviceID)
		return nil, false
	}

	session := authResult.Session
	ctx.SetContextData("Session", session)
	ctx.SetContextData("SessionID", session.ID)
	ctx.SetContextData("UserID", session.UserID)
	ctx.SetContextData("EmployeeID", session.EmployeeID)
	ctx.SetContextData("Role", session.Role)
	return ctx, true
}

func AdminMiddleware(ctx *interfaces.ApplicationContext[any]) (*interfaces.ApplicationContext[any], bool) {
	if ctx.GetStringContextData("Role") != constants.RoleAdmin {
		apperrors.AuthorizationError(ctx.Ctx, "only admins can access this resource", ctx.DeviceID)
		return nil, false
	}
	return ctx, true
}
