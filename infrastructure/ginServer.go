package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	apperrors "hrms.io/application/appErrors"
	"hrms.io/infrastructure/env"
	"hrms.io/infrastructure/logger"
	middlewares "hrms.io/infrastructure/middleware"
	ratelimit "hrms.io/infrastructure/ratelimit"
	webRoutev1 "hrms.io/infrastructure/routes/ginRouter/web/v1"
	server_response "hrms.io/infrastructure/serverResponse"
	startup "hrms.io/infrastructure/startUp"
)

type ginServer struct{}

func corsOrigins(ginMode string) []string {
	if ginMode == "debug" {
		return env.List("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"})
	}
	return env.List("CORS_ORIGINS", []string{"https://hr.hrms.io"})
}

func newRouter(services *startup.Services, ginMode string) *gin.Engine {
	server := gin.Default()
	server.ContextWithFallback = true

	corsConfig := cors.Config{
		AllowOrigins:     corsOrigins(ginMode),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Device-Id", "X-Session-Id", "User-Agent"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	server.Use(cors.New(corsConfig))
	server.MaxMultipartMemory = 8 << 20 // 8 MiB

	requestLimit := ratelimit.TokenBucketPerIP(env.Float("RATE_LIMIT", 25))
	deps := &webRoutev1.Dependencies{
		Controller:     services.Controller,
		Sessions:       services.Sessions,
		Events:         services.Hub,
		RequestLimit:   requestLimit,
		FrameRateLimit: env.Float("FRAME_RATE_LIMIT", 30),
	}

	api := server.Group("/api")
	api.Use(middlewares.UserAgentMiddleware())

	routerV1 := api.Group("/v1")
	{
		limited := routerV1.Group("")
		limited.Use(requestLimit)
		webRoutev1.AuthRouter(limited, deps)
		webRoutev1.AttendanceRouter(limited, deps)
		webRoutev1.EventsRouter(limited, deps)
		// applies requestLimit itself; frame pushes get a per-session budget
		webRoutev1.VerificationRouter(routerV1, deps)
	}

	server.GET("/ping", func(ctx *gin.Context) {
		server_response.Responder.Respond(ctx, http.StatusOK, "pong!", nil, nil, nil, nil)
	})

	server.NoRoute(func(ctx *gin.Context) {
		apperrors.NotFoundError(ctx, fmt.Sprintf("%s %s does not exist", ctx.Request.Method, ctx.Request.URL), nil)
	})
	return server
}

func (s *ginServer) Start() {
	gin_mode := env.String("GIN_MODE", "")
	if gin_mode != "debug" && gin_mode != "release" {
		panic(fmt.Sprintf("invalid gin mode used - %s", gin_mode))
	}

	services := startup.StartServices()
	defer startup.CleanUpServices(services)

	port := env.String("PORT", "8080")
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           newRouter(services, gin_mode),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("server did not shut down cleanly", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
		}
	}()

	logger.Info(fmt.Sprintf("Server starting on PORT %s", port))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped unexpectedly", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
}
