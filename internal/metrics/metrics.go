package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is the subset of metric operations the services depend on
type Recorder interface {
	RecordAlertEvaluation(status string, duration time.Duration, alertCount int)
	RecordNotificationCreated(notificationType string)
	RecordNotificationDeduped()
	RecordNotificationFailure()
	RecordHTTPRequest(method, path string, status int, duration time.Duration)
}

// PrometheusMetrics implements Recorder with prometheus collectors
type PrometheusMetrics struct {
	alertEvaluations      *prometheus.CounterVec
	alertEvalDuration     prometheus.Histogram
	alertsReturned        prometheus.Counter
	notificationsCreated  *prometheus.CounterVec
	notificationDedupHits prometheus.Counter
	notificationFailures  prometheus.Counter
	httpRequests          *prometheus.CounterVec
	httpDuration          *prometheus.HistogramVec
}

// NewPrometheusMetrics registers and returns the application collectors
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		alertEvaluations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "budget_alert_evaluations_total",
				Help: "Total number of budget alert evaluations",
			},
			[]string{"status"},
		),
		alertEvalDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "budget_alert_evaluation_duration_seconds",
				Help:    "Budget alert evaluation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		alertsReturned: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "budget_alerts_returned_total",
				Help: "Total number of alerts returned to callers",
			},
		),
		notificationsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_created_total",
				Help: "Total number of notifications created by type",
			},
			[]string{"type"},
		),
		notificationDedupHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "notification_dedup_hits_total",
				Help: "Notifications suppressed because one already existed this period",
			},
		),
		notificationFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "notification_insert_failures_total",
				Help: "Notification inserts that failed and were swallowed",
			},
		),
		httpRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

func (m *PrometheusMetrics) RecordAlertEvaluation(status string, duration time.Duration, alertCount int) {
	m.alertEvaluations.WithLabelValues(status).Inc()
	m.alertEvalDuration.Observe(duration.Seconds())
	if alertCount > 0 {
		m.alertsReturned.Add(float64(alertCount))
	}
}

func (m *PrometheusMetrics) RecordNotificationCreated(notificationType string) {
	m.notificationsCreated.WithLabelValues(notificationType).Inc()
}

func (m *PrometheusMetrics) RecordNotificationDeduped() {
	m.notificationDedupHits.Inc()
}

func (m *PrometheusMetrics) RecordNotificationFailure() {
	m.notificationFailures.Inc()
}

func (m *PrometheusMetrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, statusLabel(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status < 200:
		return "1xx"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// NopRecorder is a Recorder that does nothing, for tests
type NopRecorder struct{}

func (NopRecorder) RecordAlertEvaluation(string, time.Duration, int)     {}
func (NopRecorder) RecordNotificationCreated(string)                     {}
func (NopRecorder) RecordNotificationDeduped()                           {}
func (NopRecorder) RecordNotificationFailure()                           {}
func (NopRecorder) RecordHTTPRequest(string, string, int, time.Duration) {}
