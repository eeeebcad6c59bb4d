package routes

import (
	"SaudeSync/config"
	"SaudeSync/controllers"
	"SaudeSync/handlers"
	"SaudeSync/middlewares"
	"SaudeSync/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Consultations services.ConsultationService
	Files         services.FileService
	Recordings    services.RecordingService
	Medications   services.MedicationService
	Auth          services.AuthService
	Notes         handlers.NotesScheduler
	Scheduler     handlers.ReminderTicker
	Feed          handlers.NotificationFeed
	HealthChecks  map[string]controllers.HealthCheck
}

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cfg *config.AppConfig, svc Services, log *zap.Logger) http.Handler {
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.LoggingMiddleware(log))
	router.Use(middlewares.CorsMiddleware(middlewares.DefaultCorsConfig(cfg.AllowedOrigins)))
	router.Use(middlewares.SecurityHeaders())
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))

	requireSession := middlewares.TokenAuthMiddleware(svc.Auth)

	authHandler := handlers.NewAuthHandler(svc.Auth, log)
	controllers.NewAuthController(authHandler).RegisterRoutes(router, requireSession)

	api := router.Group("/", requireSession)
	controllers.SetupPatientRoutes(api, controllers.PatientHandlers{
		Consultation: handlers.NewConsultationHandler(svc.Consultations, svc.Notes, log),
		Reminder:     handlers.NewReminderHandler(svc.Consultations, svc.Scheduler, log),
		File:         handlers.NewFileHandler(svc.Files, log),
		Recording:    handlers.NewRecordingHandler(svc.Recordings, log),
		Medication:   handlers.NewMedicationHandler(svc.Medications, log),
		Notification: handlers.NewNotificationHandler(svc.Feed, log),
	})

	controllers.SetupRootRoute(router, svc.HealthChecks)

	return router
}
