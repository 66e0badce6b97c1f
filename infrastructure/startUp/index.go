package startup

import (
	"context"
	"time"

	"hrms.io/application/controller"
	"hrms.io/application/repository"
	auth_usecases "hrms.io/application/usecases/auth"
	verification_usecases "hrms.io/application/usecases/verification"
	"hrms.io/infrastructure/auth"
	"hrms.io/infrastructure/database"
	"hrms.io/infrastructure/database/connection/cache"
	"hrms.io/infrastructure/env"
	"hrms.io/infrastructure/hrbackend"
	"hrms.io/infrastructure/logger"
	messagequeue "hrms.io/infrastructure/message_queue"
	"hrms.io/infrastructure/realtime"
)

// Services is everything built at start-up and handed to the HTTP layer.
type Services struct {
	Hub          *realtime.Hub
	Sessions     *auth_usecases.SessionService
	Verification *verification_usecases.Service
	Controller   *controller.Controller
}

// Used to start services such as loggers, databases, queues, etc.
func StartServices() *Services {
	logger.InitializeLogger()
	if _, err := auth.SigningKey(); err != nil {
		logger.Error("session tokens cannot be verified without a signing key", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		panic(err)
	}
	database.SetUpDatabase()

	redisClient, err := cache.GetInstance()
	if err != nil {
		logger.Error("redis is required for sessions and realtime events", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		panic(err)
	}
	hub := realtime.NewHub(redisClient, env.String("REALTIME_CHANNEL_PREFIX", "hrms:"))
	sessions := auth_usecases.NewSessionService(repository.SessionCacheRepo(), hub)

	baseURL := env.String("HR_BACKEND_BASE_URL", "")
	if baseURL == "" {
		logger.Warning("HR_BACKEND_BASE_URL is not set, face verification and attendance calls will fail")
	}
	backend := hrbackend.NewClient(baseURL, env.String("HR_BACKEND_API_KEY", ""), env.Duration("HR_BACKEND_TIMEOUT", 15*time.Second))

	verification := verification_usecases.NewService(
		verification_usecases.LivenessConfigFromEnv(),
		backend,
		sessions,
		repository.VerificationLogRepo(),
		hub,
		messagequeue.TaskQueue,
	)

	return &Services{
		Hub:          hub,
		Sessions:     sessions,
		Verification: verification,
		Controller: &controller.Controller{
			Sessions:     sessions,
			Verification: verification,
			Attendance:   backend,
			Logs:         repository.VerificationLogRepo(),
		},
	}
}

// Used to clean up after services that have been shutdown.
func CleanUpServices(services *Services) {
	if services != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := services.Verification.Shutdown(ctx); err != nil {
			logger.Warning("verification runs did not settle before shutdown", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
		}
		services.Hub.Close()
	}
	messagequeue.StopQueue()
	database.CleanUp()
	logger.Sync()
}
