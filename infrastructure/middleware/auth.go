package middlewares

import (
	"github.com/gin-gonic/gin"
	"hrms.io/application/middlewares"
)

func SessionAuthMiddleware(sessions middlewares.SessionAuthenticator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		appContext, next := middlewares.SessionAuthMiddleware(currentAppContext(ctx), sessions)
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		appContext, next := middlewares.AdminMiddleware(currentAppContext(ctx))
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
