package middlewares

import (
	"github.com/gin-gonic/gin"
	"hrms.io/application/interfaces"
	"hrms.io/application/middlewares"
)

func UserAgentMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		appContext, next := middlewares.UserAgentMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:    ctx,
			Keys:   ctx.Keys,
			Header: ctx.Request.Header,
		}, ctx.ClientIP())
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}

// appContext returns the context built by an earlier middleware in the chain.
func currentAppContext(ctx *gin.Context) *interfaces.ApplicationContext[any] {
	if existing, ok := ctx.Get("AppContext"); ok {
		if appContext, ok := existing.(*interfaces.ApplicationContext[any]); ok {
			return appContext
		}
	}
	return &interfaces.ApplicationContext[any]{
		Ctx:      ctx,
		Keys:     ctx.Keys,
		Header:   ctx.Request.Header,
		DeviceID: ctx.Request.Header.Get("X-Device-Id"),
	}
}
