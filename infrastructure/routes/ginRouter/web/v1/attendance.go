package routev1

import (
	"github.com/gin-gonic/gin"
	"hrms.io/application/interfaces"
	middlewares "hrms.io/infrastructure/middleware"
)

func AttendanceRouter(router *gin.RouterGroup, deps *Dependencies) {
	attendanceRouter := router.Group("/attendance")
	attendanceRouter.Use(middlewares.SessionAuthMiddleware(deps.Sessions))
	{
		attendanceRouter.GET("/summary", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			appContext.Query = map[string]string{
				"from": ctx.Query("from"),
				"to":   ctx.Query("to"),
			}
			deps.Controller.AttendanceSummary(appContext)
		})
	}
}
