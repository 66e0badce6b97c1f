package routev1

import (
	"github.com/gin-gonic/gin"
	apperrors "hrms.io/application/appErrors"
	"hrms.io/application/controller/dto"
	"hrms.io/application/interfaces"
	middlewares "hrms.io/infrastructure/middleware"
	"hrms.io/infrastructure/ratelimit"
)

func VerificationRouter(router *gin.RouterGroup, deps *Dependencies) {
	verificationRouter := router.Group("/verification")
	sessionAuth := middlewares.SessionAuthMiddleware(deps.Sessions)
	requestLimit := deps.RequestLimit
	if requestLimit == nil {
		requestLimit = ratelimit.TokenBucketPerIP(25)
	}
	frameLimit := deps.FrameRateLimit
	if frameLimit <= 0 {
		frameLimit = 30
	}
	// frames are budgeted per session so kiosks sharing an IP do not starve
	frameLimiter := ratelimit.TokenBucketPerKey(frameLimit, func(ctx *gin.Context) string {
		value, _ := ctx.Get("AppContext")
		appContext, ok := value.(*interfaces.ApplicationContext[any])
		if !ok {
			return ""
		}
		return appContext.GetStringContextData("SessionID")
	})
	{
		verificationRouter.POST("/runs", requestLimit, sessionAuth, func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.StartVerificationDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, &appContext.DeviceID)
				return
			}
			deps.Controller.StartVerification(&interfaces.ApplicationContext[dto.StartVerificationDTO]{
				Ctx:        ctx,
				Body:       &body,
				Keys:       appContext.Keys,
				DeviceID:   appContext.DeviceID,
				UserAgent:  appContext.UserAgent,
				DeviceName: appContext.DeviceName,
			})
		})

		verificationRouter.POST("/runs/:runID/frames", sessionAuth, frameLimiter, func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.FrameDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, &appContext.DeviceID)
				return
			}
			deps.Controller.PushFrame(&interfaces.ApplicationContext[dto.FrameDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				Param:    map[string]string{"runID": ctx.Param("runID")},
				DeviceID: appContext.DeviceID,
			})
		})

		verificationRouter.POST("/runs/:runID/camera-error", requestLimit, sessionAuth, func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.CameraErrorDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx, &appContext.DeviceID)
				return
			}
			deps.Controller.ReportCameraError(&interfaces.ApplicationContext[dto.CameraErrorDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				Param:    map[string]string{"runID": ctx.Param("runID")},
				DeviceID: appContext.DeviceID,
			})
		})

		verificationRouter.GET("/runs/:runID", requestLimit, sessionAuth, func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			appContext.Param = map[string]string{"runID": ctx.Param("runID")}
			deps.Controller.VerificationStatus(appContext)
		})

		verificationRouter.DELETE("/runs/:runID", requestLimit, sessionAuth, func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			appContext.Param = map[string]string{"runID": ctx.Param("runID")}
			deps.Controller.CancelVerification(appContext)
		})

		verificationRouter.GET("/logs", requestLimit, sessionAuth, middlewares.AdminMiddleware(), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			appContext.Query = map[string]string{
				"page":   ctx.Query("page"),
				"limit":  ctx.Query("limit"),
				"userID": ctx.Query("userID"),
				"status": ctx.Query("status"),
			}
			deps.Controller.ListVerificationLogs(appContext)
		})
	}
}
