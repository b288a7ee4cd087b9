package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dakotasky/weather-backend/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetByUserID(userID string) (*models.User, error)
	GetUsersWithLocation() ([]models.User, error)
	UpsertLocation(userID string, location models.LocationPayload, at time.Time) error
	UpsertFCMToken(userID, token string) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// GetByUserID retrieves a user by their client-assigned user ID
func (r *PostgresUserRepository) GetByUserID(userID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsersWithLocation returns all users that have reported a location
// context at least once. Users without one cannot be geofence-matched.
func (r *PostgresUserRepository) GetUsersWithLocation() ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("has_location = ?", true).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpsertLocation overwrites the user's location context, creating the
// user row if this is the first report.
func (r *PostgresUserRepository) UpsertLocation(userID string, location models.LocationPayload, at time.Time) error {
	user, err := r.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		user = &models.User{UserID: userID}
	}
	user.Lat = location.Lat
	user.Lon = location.Lon
	user.IsUsingLocation = location.IsUsingLocation
	user.SelectedCity = location.SelectedCity
	user.HasLocation = true
	user.LocationUpdatedAt = at
	return r.db.Save(user).Error
}

// UpsertFCMToken stores the user's delivery token, creating the user row
// if needed.
func (r *PostgresUserRepository) UpsertFCMToken(userID, token string) error {
	user, err := r.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		user = &models.User{UserID: userID}
	}
	user.FCMToken = token
	return r.db.Save(user).Error
}
