package pipeline_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dakotasky/weather-backend/internal/geo"
	"github.com/dakotasky/weather-backend/internal/models"
	"github.com/dakotasky/weather-backend/internal/observability"
	"github.com/dakotasky/weather-backend/internal/pipeline"
)

// --- fakes ---

type fakeFeed struct {
	alerts []models.AlertFeature
	err    error
}

func (f *fakeFeed) FetchActiveAlerts(context.Context) ([]models.AlertFeature, error) {
	return f.alerts, f.err
}

type fakeAlertRepo struct {
	mu          sync.Mutex
	lastUpdated map[string]string
	upserts     []models.StoredAlert
	sweepCutoff time.Time
	sweptCount  int64
}

func (f *fakeAlertRepo) GetLastUpdated(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ts, ok := f.lastUpdated[key]
	return ts, ok, nil
}

func (f *fakeAlertRepo) Upsert(_ context.Context, alert *models.StoredAlert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastUpdated == nil {
		f.lastUpdated = map[string]string{}
	}
	f.lastUpdated[alert.StorageKey] = alert.LastUpdated
	f.upserts = append(f.upserts, *alert)
	return nil
}

func (f *fakeAlertRepo) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweepCutoff = cutoff
	return f.sweptCount, nil
}

type fakeUserRepo struct {
	users []models.User
}

func (f *fakeUserRepo) GetByUserID(string) (*models.User, error) { return nil, nil }

func (f *fakeUserRepo) GetUsersWithLocation() ([]models.User, error) {
	return f.users, nil
}

func (f *fakeUserRepo) UpsertLocation(string, models.LocationPayload, time.Time) error {
	return nil
}

func (f *fakeUserRepo) UpsertFCMToken(string, string) error { return nil }

type fakeNotifier struct {
	mu       sync.Mutex
	notified []string // userID
}

func (f *fakeNotifier) NotifyUser(_ context.Context, user *models.User, _ *models.AlertFeature) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, user.UserID)
	return nil
}

// --- helpers ---

func tornadoWarning(updated string) models.AlertFeature {
	return models.AlertFeature{
		ID: "https://api.weather.gov/alerts/tornado-1",
		Properties: models.AlertProperties{
			Event:    "Tornado Warning",
			AreaDesc: "Minnehaha, SD",
			Headline: "Tornado Warning for Minnehaha County",
			Updated:  updated,
			Ends:     "2026-03-01T15:00:00Z",
		},
		// Box around Sioux Falls.
		Geometry: &models.AlertGeometry{
			Type: "Polygon",
			Rings: [][][]float64{
				{{-97.0, 43.3}, {-97.0, 43.8}, {-96.4, 43.8}, {-96.4, 43.3}},
			},
		},
	}
}

func newPipeline(feed *fakeFeed, alerts *fakeAlertRepo, users *fakeUserRepo, notifier *fakeNotifier, clock clockwork.Clock) *pipeline.Pipeline {
	return pipeline.New(
		feed, alerts, users, notifier,
		geo.NewMatcher(zap.NewNop()),
		clock,
		observability.NewMetricsForTesting(),
		zap.NewNop(),
		4,
	)
}

// --- tests ---

func TestRun_NewAlertNotifiesOnlyUsersInArea(t *testing.T) {
	feed := &fakeFeed{alerts: []models.AlertFeature{tornadoWarning("2026-03-01T12:00:00Z")}}
	alerts := &fakeAlertRepo{}
	users := &fakeUserRepo{users: []models.User{
		// Inside the polygon, with a fresh location.
		{UserID: "inside", Lat: 43.5446, Lon: -96.7311, FCMToken: "t1",
			LocationUpdatedAt: time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)},
		// Spearfish: outside the polygon and far beyond the 75 km
		// warning radius.
		{UserID: "outside", Lat: 44.4908, Lon: -103.8594, FCMToken: "t2",
			LocationUpdatedAt: time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)},
	}}
	notifier := &fakeNotifier{}
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC))

	p := newPipeline(feed, alerts, users, notifier, clock)
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, []string{"inside"}, notifier.notified)
	require.Len(t, alerts.upserts, 1)
	assert.Equal(t, "alerts_tornado-1", alerts.upserts[0].StorageKey)
	assert.Equal(t, "2026-03-01T12:00:00Z", alerts.upserts[0].LastUpdated)
}

func TestRun_UnchangedAlertIsSkipped(t *testing.T) {
	feed := &fakeFeed{alerts: []models.AlertFeature{tornadoWarning("2026-03-01T12:00:00Z")}}
	alerts := &fakeAlertRepo{lastUpdated: map[string]string{
		"alerts_tornado-1": "2026-03-01T12:00:00Z",
	}}
	users := &fakeUserRepo{users: []models.User{
		{UserID: "inside", Lat: 43.5446, Lon: -96.7311, FCMToken: "t1",
			LocationUpdatedAt: time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)},
	}}
	notifier := &fakeNotifier{}
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC))

	p := newPipeline(feed, alerts, users, notifier, clock)
	require.NoError(t, p.Run(context.Background()))

	assert.Empty(t, notifier.notified)
	assert.Empty(t, alerts.upserts)
}

func TestRun_ChangedTimestampRenotifies(t *testing.T) {
	feed := &fakeFeed{alerts: []models.AlertFeature{tornadoWarning("2026-03-01T12:30:00Z")}}
	alerts := &fakeAlertRepo{lastUpdated: map[string]string{
		"alerts_tornado-1": "2026-03-01T12:00:00Z",
	}}
	users := &fakeUserRepo{users: []models.User{
		{UserID: "inside", Lat: 43.5446, Lon: -96.7311, FCMToken: "t1",
			LocationUpdatedAt: time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)},
	}}
	notifier := &fakeNotifier{}
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 35, 0, 0, time.UTC))

	p := newPipeline(feed, alerts, users, notifier, clock)
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, []string{"inside"}, notifier.notified)
	require.Len(t, alerts.upserts, 1)
	assert.Equal(t, "2026-03-01T12:30:00Z", alerts.upserts[0].LastUpdated)
}

func TestRun_SweepUsesSevenDayRetentionCutoff(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	feed := &fakeFeed{}
	alerts := &fakeAlertRepo{sweptCount: 2}
	clock := clockwork.NewFakeClockAt(now)

	p := newPipeline(feed, alerts, &fakeUserRepo{}, &fakeNotifier{}, clock)
	require.NoError(t, p.Run(context.Background()))

	// An alert expiring 8 days ago falls before this cutoff and is
	// purged; one expiring 6 days ago survives.
	assert.Equal(t, now.Add(-7*24*time.Hour), alerts.sweepCutoff)
}

func TestRun_FeedErrorAbortsRun(t *testing.T) {
	feed := &fakeFeed{err: errors.New("connection refused")}
	alerts := &fakeAlertRepo{}
	notifier := &fakeNotifier{}
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	p := newPipeline(feed, alerts, &fakeUserRepo{}, notifier, clock)
	err := p.Run(context.Background())

	require.Error(t, err)
	assert.Empty(t, notifier.notified)
	assert.True(t, alerts.sweepCutoff.IsZero())
}
