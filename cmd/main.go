package main

import (
	"SaudeSync/cache"
	"SaudeSync/config"
	"SaudeSync/controllers"
	"SaudeSync/database"
	"SaudeSync/logger"
	"SaudeSync/models"
	"SaudeSync/repositories"
	"SaudeSync/routes"
	"SaudeSync/services"
	"SaudeSync/storage"
	"SaudeSync/utils"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"
)

func main() {
	// Load configuration from config package
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "saudesync")
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Redis
	if err := database.InitializeRedis(database.DefaultRedisConfig(cfg.RedisAddress), zlog); err != nil {
		return err
	}
	defer database.RedisClient.Close()

	// Initialize the cache utility
	redisCache, err := cache.NewCache(database.RedisClient)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	kv, err := openStorage(ctx, cfg, redisCache, zlog)
	if err != nil {
		return err
	}

	tokens, err := utils.NewTokenMaker(cfg.GetSymmetricKey())
	if err != nil {
		return err
	}

	loc := cfg.Location()
	locker := database.NewRedisLocker(zlog)

	// Initialize repositories
	consultationRepo := repositories.NewConsultationRepository(ctx,
		repositories.NewSnapshotRepository[models.Consultation](kv, repositories.ConsultationsKey, locker, zlog), zlog)
	fileRepo := repositories.NewFileRepository(ctx,
		repositories.NewSnapshotRepository[models.AttachedFile](kv, repositories.FilesKey, locker, zlog), zlog)
	recordingRepo := repositories.NewRecordingRepository(ctx,
		repositories.NewSnapshotRepository[models.Recording](kv, repositories.RecordingsKey, locker, zlog), zlog)
	medicationRepo := repositories.NewMedicationRepository(ctx,
		repositories.NewSnapshotRepository[models.Medication](kv, repositories.MedicationsKey, locker, zlog), zlog)
	sessionRepo := repositories.NewSessionRepository(redisCache)
	notificationRepo := repositories.NewNotificationRepository(redisCache, cfg.NotificationFeedSize, zlog)

	// Notification sinks
	sink := services.FanoutSink{
		services.NewLogSink(zlog),
		services.NewFeedSink(notificationRepo, zlog),
	}
	if cfg.SMTP.Enabled() {
		sink = append(sink, services.NewMailSink(cfg.SMTP, firstOrigin(cfg.AllowedOrigins), zlog))
		zlog.Info("Email reminders enabled", zap.String("recipient", cfg.SMTP.Recipient))
	}

	// Background workers
	scheduler := services.NewReminderScheduler(consultationRepo, sink, cfg.ReminderPollInterval, loc, zlog)
	transitioner := services.NewStatusTransitioner(consultationRepo, cfg.ReminderPollInterval, zlog)
	autosaver := services.NewNotesAutosaver(consultationRepo, cfg.NotesAutosaveDelay, zlog)

	handler := routes.SetupRoutes(cfg, routes.Services{
		Consultations: services.NewConsultationService(consultationRepo, recordingRepo, loc, zlog),
		Files:         services.NewFileService(fileRepo, zlog),
		Recordings:    services.NewRecordingService(recordingRepo, zlog),
		Medications:   services.NewMedicationService(medicationRepo, zlog),
		Auth:          services.NewAuthService(sessionRepo, tokens, zlog),
		Notes:         autosaver,
		Scheduler:     scheduler,
		Feed:          notificationRepo,
		HealthChecks:  healthChecks(cfg),
	}, zlog)

	// Configure and start the server
	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		scheduler.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		transitioner.Run(ctx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		zlog.Info("Starting server", zap.String("addr", srv.Addr), zap.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Graceful shutdown handling
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			stop()
			wg.Wait()
			return fmt.Errorf("listenAndServe(): %w", err)
		}
	}
	stop()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	zlog.Info("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server shutdown failed", zap.Error(err))
	}

	wg.Wait() // Wait for the background workers before the final save
	autosaver.Flush(shutdownCtx)
	database.LogRedisPool(zlog)
	if err := database.Close(); err != nil {
		zlog.Warn("Failed to close database", zap.Error(err))
	}

	zlog.Info("Server exited gracefully")
	return nil
}

// openStorage returns the key-value backend the collections are persisted to.
func openStorage(ctx context.Context, cfg *config.AppConfig, redisCache *cache.Cache, zlog *zap.Logger) (storage.KV, error) {
	if cfg.StorageBackend != config.StoragePostgres {
		return storage.NewRedisKV(redisCache), nil
	}

	db, err := database.InitDB(ctx, cfg.DBURL, cfg.Env == "development", zlog)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return storage.NewPostgresKV(db), nil
}

func healthChecks(cfg *config.AppConfig) map[string]controllers.HealthCheck {
	checks := map[string]controllers.HealthCheck{
		"redis": func(ctx context.Context) error {
			return database.RedisClient.Ping(ctx).Err()
		},
	}
	if cfg.StorageBackend == config.StoragePostgres {
		checks["postgres"] = func(ctx context.Context) error {
			sqlDB, err := database.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	return checks
}

func firstOrigin(origins []string) string {
	if len(origins) == 0 {
		return ""
	}
	return origins[0]
}
