package routev1

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "hrms.io/application/appErrors"
	"hrms.io/application/constants"
	"hrms.io/application/interfaces"
	"hrms.io/infrastructure/env"
	"hrms.io/infrastructure/logger"
	middlewares "hrms.io/infrastructure/middleware"
)

// EventsRouter streams realtime events to the signed-in user as server-sent
// events. Admins also receive the admin channel.
func EventsRouter(router *gin.RouterGroup, deps *Dependencies) {
	eventsRouter := router.Group("/events")
	eventsRouter.Use(middlewares.SessionAuthMiddleware(deps.Sessions))
	{
		eventsRouter.GET("", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			channels := []string{constants.EmployeeChannel(appContext.GetStringContextData("UserID"))}
			if appContext.GetStringContextData("Role") == constants.RoleAdmin {
				channels = append(channels, constants.ADMIN_CHANNEL)
			}

			sub, err := deps.Events.Subscribe(ctx.Request.Context(), channels...)
			if err != nil {
				apperrors.ExternalDependencyError(ctx, "redis", "500", err, appContext.DeviceID)
				return
			}
			defer sub.Close()

			heartbeat := time.NewTicker(env.Duration("SSE_HEARTBEAT_INTERVAL", 25*time.Second))
			defer heartbeat.Stop()

			ctx.Header("Cache-Control", "no-cache")
			ctx.Header("Connection", "keep-alive")
			ctx.Header("X-Accel-Buffering", "no")
			ctx.SSEvent("ready", gin.H{"channels": channels})
			ctx.Writer.Flush()

			ctx.Stream(func(w io.Writer) bool {
				select {
				case <-ctx.Request.Context().Done():
					return false
				case <-sub.Done():
					return false
				case event, ok := <-sub.Events():
					if !ok {
						return false
					}
					ctx.SSEvent(event.Type, event)
					// the client signs out on this event, nothing more to send
					return event.Type != constants.EventSessionTerminated
				case <-heartbeat.C:
					ctx.SSEvent("ping", gin.H{"at": time.Now().UTC()})
					return true
				}
			})
			logger.Debug("event stream closed", logger.LoggerOptions{
				Key:  "userID",
				Data: appContext.GetStringContextData("UserID"),
			})
		})
	}
}
