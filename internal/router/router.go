package router

import (
	"fmt"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dakotasky/weather-backend/internal/handlers"
	"github.com/dakotasky/weather-backend/internal/models"
	"github.com/dakotasky/weather-backend/internal/repositories"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes runs migrations and wires all application routes. The
// repositories are constructed once by the caller and shared with the
// polling pipeline.
func SetupRoutes(
	e *echo.Echo,
	pgdb *gorm.DB,
	userRepo repositories.UserRepository,
	prefRepo repositories.PreferenceRepository,
	notifRepo repositories.NotificationRepository,
	logger *zap.Logger,
) error {
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.NotificationPreferences{},
		&models.NotificationRecord{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate models: %w", err)
	}

	e.GET("/health", handlers.HealthCheck)

	api := e.Group("/api/v1")

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)

	preferenceHandler := handlers.NewPreferenceHandler(prefRepo)
	preferenceHandler.RegisterPreferenceRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notifRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	logger.Info("routes configured")
	return nil
}
