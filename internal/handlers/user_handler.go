package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dakotasky/weather-backend/internal/models"
	"github.com/dakotasky/weather-backend/internal/repositories"
)

// UserHandler handles location-context and device-token requests
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers user routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/users/location", h.UpdateLocation)
	g.POST("/users/fcm-token", h.RegisterToken)
}

// UpdateLocation overwrites the user's last known position
func (h *UserHandler) UpdateLocation(c echo.Context) error {
	var req models.UpdateLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.userRepository.UpsertLocation(req.UserID, *req.Location, time.Now()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// RegisterToken stores the user's push delivery token
func (h *UserHandler) RegisterToken(c echo.Context) error {
	var req models.RegisterTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.userRepository.UpsertFCMToken(req.UserID, req.FCMToken); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
