package routev1

import (
	"github.com/gin-gonic/gin"
	apperrors "hrms.io/application/appErrors"
	"hrms.io/application/controller/dto"
	"hrms.io/application/interfaces"
	middlewares "hrms.io/infrastructure/middleware"
)

func AuthRouter(router *gin.RouterGroup, deps *Dependencies) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/session", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.CreateSessionDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, &appContext.DeviceID)
				return
			}
			deps.Controller.CreateSession(&interfaces.ApplicationContext[dto.CreateSessionDTO]{
				Ctx:        ctx,
				Body:       &body,
				Keys:       appContext.Keys,
				DeviceID:   appContext.DeviceID,
				UserAgent:  appContext.UserAgent,
				DeviceName: appContext.DeviceName,
			})
		})

		authRouter.GET("/session", middlewares.SessionAuthMiddleware(deps.Sessions), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			deps.Controller.GetSession(appContext)
		})

		authRouter.DELETE("/session", middlewares.SessionAuthMiddleware(deps.Sessions), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			deps.Controller.DeleteSession(appContext)
		})
	}
}
