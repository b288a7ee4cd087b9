package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dakotasky/weather-backend/internal/models"
	"github.com/dakotasky/weather-backend/internal/repositories"
)

// PreferenceHandler handles notification-preference HTTP requests
type PreferenceHandler struct {
	preferenceRepository repositories.PreferenceRepository
}

// NewPreferenceHandler creates a new PreferenceHandler
func NewPreferenceHandler(prefRepo repositories.PreferenceRepository) *PreferenceHandler {
	return &PreferenceHandler{preferenceRepository: prefRepo}
}

// RegisterPreferenceRoutes registers preference routes
func (h *PreferenceHandler) RegisterPreferenceRoutes(g *echo.Group) {
	g.POST("/users/preferences", h.StorePreferences)
	g.GET("/users/preferences", h.LoadPreferences)
}

// StorePreferences persists a user's delivery policy
func (h *PreferenceHandler) StorePreferences(c echo.Context) error {
	var req models.StorePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.preferenceRepository.Upsert(req.UserID, *req.Preferences); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// LoadPreferences returns the stored preferences, or null when the user
// never configured any
func (h *PreferenceHandler) LoadPreferences(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing userId parameter")
	}

	prefs, err := h.preferenceRepository.Get(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if prefs == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, prefs.ToPayload())
}
