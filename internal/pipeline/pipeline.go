package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dakotasky/weather-backend/internal/geo"
	"github.com/dakotasky/weather-backend/internal/models"
	"github.com/dakotasky/weather-backend/internal/observability"
	"github.com/dakotasky/weather-backend/internal/repositories"
)

const (
	// Stored alerts are purged once their expiry is this far in the past.
	retentionWindow = 7 * 24 * time.Hour
	// Location contexts older than this are logged as stale but still
	// matched against.
	locationStaleAfter = 24 * time.Hour
)

// FeedClient fetches the current set of active, allow-listed alerts.
type FeedClient interface {
	FetchActiveAlerts(ctx context.Context) ([]models.AlertFeature, error)
}

// Notifier delivers a push for one (user, alert) pair.
type Notifier interface {
	NotifyUser(ctx context.Context, user *models.User, alert *models.AlertFeature) error
}

// Matcher decides whether a user location falls in an alert's area.
type Matcher interface {
	Matches(lat, lon float64, t geo.Target) bool
}

// Pipeline is one poll cycle: fetch feed, diff against the store, fan out
// notifications for new or updated alerts, then sweep expired records.
type Pipeline struct {
	feed        FeedClient
	alerts      repositories.AlertRepository
	users       repositories.UserRepository
	notifier    Notifier
	matcher     Matcher
	clock       clockwork.Clock
	metrics     *observability.Metrics
	logger      *zap.Logger
	fanOutLimit int
}

// New creates a Pipeline. fanOutLimit caps concurrent per-user
// match-and-dispatch work within a single alert.
func New(
	feed FeedClient,
	alerts repositories.AlertRepository,
	users repositories.UserRepository,
	notifier Notifier,
	matcher Matcher,
	clock clockwork.Clock,
	metrics *observability.Metrics,
	logger *zap.Logger,
	fanOutLimit int,
) *Pipeline {
	if fanOutLimit < 1 {
		fanOutLimit = 1
	}
	return &Pipeline{
		feed:        feed,
		alerts:      alerts,
		users:       users,
		notifier:    notifier,
		matcher:     matcher,
		clock:       clock,
		metrics:     metrics,
		logger:      logger,
		fanOutLimit: fanOutLimit,
	}
}

// Run executes one poll cycle. Only a feed failure is fatal to the run;
// per-alert and per-user failures are logged and skipped so the rest of
// the batch continues.
func (p *Pipeline) Run(ctx context.Context) error {
	logger := p.logger.With(zap.String("run_id", uuid.NewString()))
	logger.Info("starting alert poll")

	alerts, err := p.feed.FetchActiveAlerts(ctx)
	if err != nil {
		return fmt.Errorf("fetch active alerts: %w", err)
	}
	p.metrics.AlertsFetched.Add(float64(len(alerts)))

	for i := range alerts {
		alert := alerts[i]
		if err := p.processAlert(ctx, logger, &alert); err != nil {
			logger.Error("alert processing failed",
				zap.String("alert_id", alert.ID),
				zap.Error(err),
			)
		}
	}

	p.sweepExpired(ctx, logger)
	logger.Info("alert poll completed")
	return nil
}

// processAlert diffs one alert against the store and, when it is new or
// its effective timestamp changed, stores it and fans out notifications.
func (p *Pipeline) processAlert(ctx context.Context, logger *zap.Logger, alert *models.AlertFeature) error {
	storageKey := models.SanitizeAlertID(alert.ID)
	incoming := alert.Properties.EffectiveTimestamp()

	stored, exists, err := p.alerts.GetLastUpdated(ctx, storageKey)
	if err != nil {
		return fmt.Errorf("look up alert %s: %w", storageKey, err)
	}
	if exists && stored == incoming {
		p.metrics.AlertsSkipped.Inc()
		logger.Debug("alert unchanged, skipping",
			zap.String("storage_key", storageKey),
			zap.String("last_updated", stored),
		)
		return nil
	}

	doc := models.NewStoredAlert(*alert, p.clock.Now())
	if err := p.alerts.Upsert(ctx, &doc); err != nil {
		return fmt.Errorf("store alert %s: %w", storageKey, err)
	}
	p.metrics.AlertsProcessed.Inc()
	logger.Info("processing alert",
		zap.String("storage_key", storageKey),
		zap.String("event", alert.Properties.Event),
		zap.String("area", alert.Properties.AreaDesc),
		zap.Bool("updated", exists),
	)

	return p.fanOut(ctx, logger, alert)
}

// fanOut matches every located user against the alert and dispatches to
// the ones inside it, with bounded concurrency. One user's failure never
// aborts the others, so the goroutines only log.
func (p *Pipeline) fanOut(ctx context.Context, logger *zap.Logger, alert *models.AlertFeature) error {
	users, err := p.users.GetUsersWithLocation()
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	target := geo.Target{
		Geometry: alert.Geometry,
		Event:    alert.Properties.Event,
		AreaDesc: alert.Properties.AreaDesc,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.fanOutLimit)
	for i := range users {
		user := users[i]
		g.Go(func() error {
			if age := p.clock.Now().Sub(user.LocationUpdatedAt); age > locationStaleAfter {
				logger.Warn("user location is stale",
					zap.String("user_id", user.UserID),
					zap.Duration("age", age),
				)
			}
			if !p.matcher.Matches(user.Lat, user.Lon, target) {
				return nil
			}
			if err := p.notifier.NotifyUser(ctx, &user, alert); err != nil {
				logger.Error("notification delivery failed",
					zap.String("user_id", user.UserID),
					zap.String("alert_id", alert.ID),
					zap.Error(err),
				)
			}
			return nil
		})
	}
	return g.Wait()
}

// sweepExpired deletes alert documents past the retention window. Sweep
// failures only cost a delayed cleanup, so they are logged, not returned.
func (p *Pipeline) sweepExpired(ctx context.Context, logger *zap.Logger) {
	cutoff := p.clock.Now().Add(-retentionWindow)
	deleted, err := p.alerts.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		logger.Error("retention sweep failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		p.metrics.AlertsPurged.Add(float64(deleted))
		logger.Info("purged expired alerts", zap.Int64("count", deleted))
	}
}
