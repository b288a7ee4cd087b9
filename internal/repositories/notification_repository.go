package repositories

import (
	"gorm.io/gorm"

	"github.com/dakotasky/weather-backend/internal/models"
)

// NotificationRepository defines the interface for delivery-history operations
type NotificationRepository interface {
	Create(record *models.NotificationRecord) error
	GetRecentByUserID(userID string, limit int) ([]models.NotificationRecord, error)
	MarkAsRead(userID string, recordID uint) error
}

// PostgresNotificationRepository implements NotificationRepository for PostgreSQL
type PostgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository
func NewPostgresNotificationRepository(db *gorm.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

// Create appends a delivery record for a user
func (r *PostgresNotificationRepository) Create(record *models.NotificationRecord) error {
	return r.db.Create(record).Error
}

// GetRecentByUserID retrieves a user's most recent delivery records, newest first
func (r *PostgresNotificationRepository) GetRecentByUserID(userID string, limit int) ([]models.NotificationRecord, error) {
	var records []models.NotificationRecord
	err := r.db.Where("user_id = ?", userID).
		Order("sent_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// MarkAsRead marks one of the user's delivery records as read
func (r *PostgresNotificationRepository) MarkAsRead(userID string, recordID uint) error {
	return r.db.Model(&models.NotificationRecord{}).
		Where("id = ? AND user_id = ?", recordID, userID).
		Update("read", true).Error
}
