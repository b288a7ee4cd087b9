package dispatch

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/dakotasky/weather-backend/internal/models"
	"github.com/dakotasky/weather-backend/internal/observability"
	"github.com/dakotasky/weather-backend/internal/repositories"
)

const fallbackBody = "Weather alert in your area"

// MessageSender is the subset of the FCM messaging client used by the
// dispatcher. *messaging.Client satisfies it.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Dispatcher builds and sends push messages for matched users and records
// each successful delivery.
type Dispatcher struct {
	sender  MessageSender
	prefs   repositories.PreferenceRepository
	records repositories.NotificationRepository
	clock   clockwork.Clock
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(
	sender MessageSender,
	prefs repositories.PreferenceRepository,
	records repositories.NotificationRepository,
	clock clockwork.Clock,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		prefs:   prefs,
		records: records,
		clock:   clock,
		metrics: metrics,
		logger:  logger,
	}
}

// NotifyUser sends a push for the alert to one matched user and appends a
// delivery record. Users without a registered device token and users
// inside their quiet hours are skipped without error. A delivery failure
// is returned so the caller can log it, but it must never abort the rest
// of the batch.
func (d *Dispatcher) NotifyUser(ctx context.Context, user *models.User, alert *models.AlertFeature) error {
	if user.FCMToken == "" {
		d.logger.Debug("user has no device token, skipping",
			zap.String("user_id", user.UserID),
		)
		return nil
	}

	prefs, err := d.prefs.Get(user.UserID)
	if err != nil {
		return fmt.Errorf("load preferences for %s: %w", user.UserID, err)
	}
	hour := d.clock.Now().Hour()
	if !QuietHoursAllow(prefs, hour) {
		d.logger.Debug("notification blocked by quiet hours",
			zap.String("user_id", user.UserID),
			zap.Int("hour", hour),
		)
		return nil
	}

	message := buildMessage(user.FCMToken, alert)
	response, err := d.sender.Send(ctx, message)
	if err != nil {
		d.metrics.NotificationFailures.Inc()
		return fmt.Errorf("send push to %s: %w", user.UserID, err)
	}

	record := &models.NotificationRecord{
		UserID:      user.UserID,
		AlertID:     alert.ID,
		Event:       alert.Properties.Event,
		AreaDesc:    alert.Properties.AreaDesc,
		SentAt:      d.clock.Now(),
		Token:       user.FCMToken,
		Read:        false,
		FCMResponse: response,
	}
	if err := d.records.Create(record); err != nil {
		return fmt.Errorf("record notification for %s: %w", user.UserID, err)
	}

	d.metrics.NotificationsSent.Inc()
	d.logger.Info("notification sent",
		zap.String("user_id", user.UserID),
		zap.String("event", alert.Properties.Event),
		zap.String("fcm_response", response),
	)
	return nil
}

func buildMessage(token string, alert *models.AlertFeature) *messaging.Message {
	p := alert.Properties
	body := p.Headline
	if body == "" {
		body = p.Description
	}
	if body == "" {
		body = fallbackBody
	}
	badge := 1
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: p.Event,
			Body:  body,
		},
		Data: map[string]string{
			"alertId":     alert.ID,
			"alertType":   p.Event,
			"areaDesc":    p.AreaDesc,
			"severity":    p.Severity,
			"urgency":     p.Urgency,
			"clickAction": "FLUTTER_NOTIFICATION_CLICK",
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID:             "weather_alerts",
				Priority:              messaging.PriorityHigh,
				DefaultSound:          true,
				DefaultVibrateTimings: true,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: &badge,
				},
			},
		},
	}
}
