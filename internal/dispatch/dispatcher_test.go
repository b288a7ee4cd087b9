package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dakotasky/weather-backend/internal/models"
	"github.com/dakotasky/weather-backend/internal/observability"
)

type fakeSender struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "projects/test/messages/1", nil
}

type fakePrefRepo struct {
	prefs map[string]*models.NotificationPreferences
}

func (f *fakePrefRepo) Get(userID string) (*models.NotificationPreferences, error) {
	return f.prefs[userID], nil
}

func (f *fakePrefRepo) Upsert(userID string, payload models.PreferencesPayload) error {
	return nil
}

type fakeRecordRepo struct {
	records []*models.NotificationRecord
}

func (f *fakeRecordRepo) Create(record *models.NotificationRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeRecordRepo) GetRecentByUserID(string, int) ([]models.NotificationRecord, error) {
	return nil, nil
}

func (f *fakeRecordRepo) MarkAsRead(string, uint) error { return nil }

func testAlert() *models.AlertFeature {
	return &models.AlertFeature{
		ID: "https://api.weather.gov/alerts/abc",
		Properties: models.AlertProperties{
			Event:    "Tornado Warning",
			Severity: "Extreme",
			Urgency:  "Immediate",
			AreaDesc: "Minnehaha, SD",
			Headline: "Tornado Warning until 3 PM",
		},
	}
}

func newDispatcher(sender *fakeSender, prefs *fakePrefRepo, records *fakeRecordRepo, at time.Time) *Dispatcher {
	return NewDispatcher(
		sender, prefs, records,
		clockwork.NewFakeClockAt(at),
		observability.NewMetricsForTesting(),
		zap.NewNop(),
	)
}

func TestNotifyUser_SendsAndRecords(t *testing.T) {
	sender := &fakeSender{}
	records := &fakeRecordRepo{}
	noon := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d := newDispatcher(sender, &fakePrefRepo{}, records, noon)

	user := &models.User{UserID: "u1", FCMToken: "token-1"}
	require.NoError(t, d.NotifyUser(context.Background(), user, testAlert()))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "token-1", msg.Token)
	assert.Equal(t, "Tornado Warning", msg.Notification.Title)
	assert.Equal(t, "Tornado Warning until 3 PM", msg.Notification.Body)
	assert.Equal(t, "FLUTTER_NOTIFICATION_CLICK", msg.Data["clickAction"])
	assert.Equal(t, "Extreme", msg.Data["severity"])

	require.Len(t, records.records, 1)
	record := records.records[0]
	assert.Equal(t, "u1", record.UserID)
	assert.Equal(t, "https://api.weather.gov/alerts/abc", record.AlertID)
	assert.Equal(t, noon, record.SentAt)
	assert.False(t, record.Read)
}

func TestNotifyUser_BodyFallsBackToDescriptionThenGeneric(t *testing.T) {
	sender := &fakeSender{}
	noon := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d := newDispatcher(sender, &fakePrefRepo{}, &fakeRecordRepo{}, noon)
	user := &models.User{UserID: "u1", FCMToken: "token-1"}

	alert := testAlert()
	alert.Properties.Headline = ""
	alert.Properties.Description = "A tornado was spotted."
	require.NoError(t, d.NotifyUser(context.Background(), user, alert))
	assert.Equal(t, "A tornado was spotted.", sender.sent[0].Notification.Body)

	alert.Properties.Description = ""
	require.NoError(t, d.NotifyUser(context.Background(), user, alert))
	assert.Equal(t, "Weather alert in your area", sender.sent[1].Notification.Body)
}

func TestNotifyUser_SkipsUserWithoutToken(t *testing.T) {
	sender := &fakeSender{}
	records := &fakeRecordRepo{}
	noon := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d := newDispatcher(sender, &fakePrefRepo{}, records, noon)

	user := &models.User{UserID: "u1"}
	require.NoError(t, d.NotifyUser(context.Background(), user, testAlert()))
	assert.Empty(t, sender.sent)
	assert.Empty(t, records.records)
}

func TestNotifyUser_BlockedByQuietHours(t *testing.T) {
	sender := &fakeSender{}
	records := &fakeRecordRepo{}
	// 23:00 local, inside a 22-6 quiet window.
	lateNight := time.Date(2026, 3, 1, 23, 0, 0, 0, time.Local)
	prefs := &fakePrefRepo{prefs: map[string]*models.NotificationPreferences{
		"u1": {DNDEnabled: true, DNDStartHour: 22, DNDEndHour: 6},
	}}
	d := newDispatcher(sender, prefs, records, lateNight)

	user := &models.User{UserID: "u1", FCMToken: "token-1"}
	require.NoError(t, d.NotifyUser(context.Background(), user, testAlert()))
	assert.Empty(t, sender.sent)
	assert.Empty(t, records.records)
}

func TestNotifyUser_DeliveryFailureReturnsErrorWithoutRecord(t *testing.T) {
	sender := &fakeSender{err: errors.New("unregistered token")}
	records := &fakeRecordRepo{}
	noon := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d := newDispatcher(sender, &fakePrefRepo{}, records, noon)

	user := &models.User{UserID: "u1", FCMToken: "token-1"}
	err := d.NotifyUser(context.Background(), user, testAlert())
	require.Error(t, err)
	assert.Empty(t, records.records)
}
