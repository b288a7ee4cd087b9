package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dakotasky/weather-backend/internal/models"
)

// PreferenceRepository defines the interface for notification preference operations
type PreferenceRepository interface {
	// Get returns nil (and no error) when the user never configured
	// preferences; absent preferences permit all notifications.
	Get(userID string) (*models.NotificationPreferences, error)
	Upsert(userID string, payload models.PreferencesPayload) error
}

// PostgresPreferenceRepository implements PreferenceRepository for PostgreSQL
type PostgresPreferenceRepository struct {
	db *gorm.DB
}

// NewPostgresPreferenceRepository creates a new PostgresPreferenceRepository
func NewPostgresPreferenceRepository(db *gorm.DB) *PostgresPreferenceRepository {
	return &PostgresPreferenceRepository{db: db}
}

// Get retrieves a user's stored preferences, or nil when not configured.
func (r *PostgresPreferenceRepository) Get(userID string) (*models.NotificationPreferences, error) {
	var prefs models.NotificationPreferences
	if err := r.db.Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prefs, nil
}

// Upsert stores the user's preferences, overwriting any existing row.
func (r *PostgresPreferenceRepository) Upsert(userID string, payload models.PreferencesPayload) error {
	prefs, err := r.Get(userID)
	if err != nil {
		return err
	}
	if prefs == nil {
		prefs = &models.NotificationPreferences{UserID: userID}
	}
	prefs.ApplyPayload(payload)
	return r.db.Save(prefs).Error
}
