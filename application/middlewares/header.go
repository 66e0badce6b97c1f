package middlewares

import (
	"errors"

	apperrors "hrms.io/application/appErrors"
	"hrms.io/application/interfaces"
	"hrms.io/infrastructure/useragent"
)

func UserAgentMiddleware(ctx *interfaces.ApplicationContext[any], clientIP string) (*interfaces.ApplicationContext[any], bool) {
	deviceID := ctx.GetHeader("X-Device-Id")
	agent := ctx.GetHeader("User-Agent")
	if agent == nil {
		apperrors.ClientError(ctx.Ctx, "user-agent header is required", []error{errors.New("user agent header missing")}, nil, ctx.Header.Get("X-Device-Id"))
		return nil, false
	}
	agentDetails := useragent.ParseUserAgent(*agent)
	if agentDetails.Bot {
		apperrors.UnsupportedUserAgent(ctx.Ctx, ctx.Header.Get("X-Device-Id"))
		return nil, false
	}
	if deviceID == nil {
		apperrors.MalformedHeader(ctx.Ctx, nil)
		return nil, false
	}
	ctx.UserAgent = *agent
	ctx.DeviceName = agentDetails.DeviceName()
	ctx.DeviceID = *deviceID
	ctx.SetContextData("ClientIP", clientIP)
	return ctx, true
}
