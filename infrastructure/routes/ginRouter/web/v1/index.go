package routev1

import (
	"context"

	"github.com/gin-gonic/gin"
	"hrms.io/application/controller"
	app_middlewares "hrms.io/application/middlewares"
	"hrms.io/infrastructure/realtime"
)

type Subscriber interface {
	Subscribe(ctx context.Context, channels ...string) (*realtime.Subscription, error)
}

// Dependencies are the services the v1 routers hand requests to.
type Dependencies struct {
	Controller *controller.Controller
	Sessions   app_middlewares.SessionAuthenticator
	Events     Subscriber
	// RequestLimit is the shared per-IP limiter for everything except frame
	// pushes. Nil gets a 25/s bucket of its own.
	RequestLimit gin.HandlerFunc
	// FrameRateLimit is the per-session budget per second for frame pushes.
	FrameRateLimit float64
}
