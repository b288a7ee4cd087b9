package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dakotasky/weather-backend/internal/models"
)

// AlertRepository defines the interface for stored alert operations
type AlertRepository interface {
	GetLastUpdated(ctx context.Context, storageKey string) (string, bool, error)
	Upsert(ctx context.Context, alert *models.StoredAlert) error
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// MongoAlertRepository implements AlertRepository for MongoDB
type MongoAlertRepository struct {
	collection *mongo.Collection
}

// NewMongoAlertRepository creates a new MongoAlertRepository
func NewMongoAlertRepository(db *mongo.Database) *MongoAlertRepository {
	return &MongoAlertRepository{collection: db.Collection("nws_alerts")}
}

// GetLastUpdated returns the stored effective timestamp for a storage key.
// exists is false when no document is stored under the key.
func (r *MongoAlertRepository) GetLastUpdated(ctx context.Context, storageKey string) (string, bool, error) {
	var doc struct {
		LastUpdated string `bson:"lastUpdated"`
	}
	opts := options.FindOne().SetProjection(bson.M{"lastUpdated": 1})
	err := r.collection.FindOne(ctx, bson.M{"_id": storageKey}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", false, nil
		}
		return "", false, err
	}
	return doc.LastUpdated, true, nil
}

// Upsert creates or overwrites the alert document under its storage key.
func (r *MongoAlertRepository) Upsert(ctx context.Context, alert *models.StoredAlert) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": alert.StorageKey}, alert, opts)
	return err
}

// DeleteExpiredBefore removes all alert documents whose expiry is older
// than the cutoff and returns the number deleted.
func (r *MongoAlertRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
