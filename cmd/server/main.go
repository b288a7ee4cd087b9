package main

import (
	"context"
	"log"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/dakotasky/weather-backend/internal/dispatch"
	"github.com/dakotasky/weather-backend/internal/feed"
	"github.com/dakotasky/weather-backend/internal/geo"
	"github.com/dakotasky/weather-backend/internal/observability"
	"github.com/dakotasky/weather-backend/internal/pipeline"
	"github.com/dakotasky/weather-backend/internal/repositories"
	"github.com/dakotasky/weather-backend/internal/router"
	"github.com/dakotasky/weather-backend/pkg/config"
	"github.com/dakotasky/weather-backend/pkg/firebase"
	"github.com/dakotasky/weather-backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal("failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	// Initialize Firebase messaging
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		logger.Fatal("failed to initialize Firebase", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// Repositories are constructed once and shared by the HTTP surface
	// and the polling pipeline.
	mongoDB := db.Mongo.Database(cfg.MongoDatabase)
	alertRepo := repositories.NewMongoAlertRepository(mongoDB)
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	prefRepo := repositories.NewPostgresPreferenceRepository(db.Postgres)
	notifRepo := repositories.NewPostgresNotificationRepository(db.Postgres)

	feedClient := feed.NewClient(cfg.FeedBaseURL, cfg.FeedArea, cfg.FeedTimeout, logger)
	matcher := geo.NewMatcher(logger)
	dispatcher := dispatch.NewDispatcher(
		firebaseApp.MessagingClient, prefRepo, notifRepo, clock, metrics, logger)
	alertPipeline := pipeline.New(
		feedClient, alertRepo, userRepo, dispatcher, matcher,
		clock, metrics, logger, cfg.DispatchConcurrency)

	// Schedule the poll; overlapping runs are skipped rather than stacked.
	scheduler := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err = scheduler.AddFunc(cfg.PollSchedule, func() {
		runCtx, cancel := context.WithTimeout(context.Background(), cfg.PollTimeout)
		defer cancel()
		if err := alertPipeline.Run(runCtx); err != nil {
			logger.Error("alert poll failed", zap.Error(err))
		}
	})
	if err != nil {
		logger.Fatal("failed to schedule alert poll", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Metrics endpoint on its own port
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":"+cfg.MetricsPort, mux); err != nil {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	// Create Echo instance
	e := echo.New()
	router.SetupMiddleware(e)
	e.Validator = validators.NewValidator()

	if err := router.SetupRoutes(e, db.Postgres, userRepo, prefRepo, notifRepo, logger); err != nil {
		logger.Fatal("failed to set up routes", zap.Error(err))
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
