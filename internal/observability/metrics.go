package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters for the alert pipeline.
type Metrics struct {
	AlertsFetched        prometheus.Counter
	AlertsProcessed      prometheus.Counter
	AlertsSkipped        prometheus.Counter
	AlertsPurged         prometheus.Counter
	NotificationsSent    prometheus.Counter
	NotificationFailures prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		AlertsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_alerts",
			Name:      "alerts_fetched_total",
			Help:      "Relevant alerts returned by the feed across all polls.",
		}),
		AlertsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_alerts",
			Name:      "alerts_processed_total",
			Help:      "Alerts stored and fanned out as new or updated.",
		}),
		AlertsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_alerts",
			Name:      "alerts_skipped_total",
			Help:      "Alerts skipped because their effective timestamp was unchanged.",
		}),
		AlertsPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_alerts",
			Name:      "alerts_purged_total",
			Help:      "Alert documents deleted by the retention sweep.",
		}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_alerts",
			Name:      "notifications_sent_total",
			Help:      "Push notifications delivered and recorded.",
		}),
		NotificationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_alerts",
			Name:      "notification_failures_total",
			Help:      "Push deliveries that failed; the batch continues past them.",
		}),
	}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.AlertsFetched,
		m.AlertsProcessed,
		m.AlertsSkipped,
		m.AlertsPurged,
		m.NotificationsSent,
		m.NotificationFailures,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so
// multiple tests can construct them without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
