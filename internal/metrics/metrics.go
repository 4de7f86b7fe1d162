package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "easygym_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "easygym_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SignupTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "easygym_signup_transitions_total",
			Help: "Total number of slot signup transitions",
		},
		[]string{"action", "result"},
	)

	SlotsPublishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "easygym_slots_published_total",
			Help: "Total number of daily timeslots materialized from base templates",
		},
	)

	PaymentsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "easygym_payments_recorded_total",
			Help: "Total number of payments recorded",
		},
		[]string{"method"},
	)

	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "easygym_notifications_sent_total",
			Help: "Total number of notification emails sent",
		},
		[]string{"type", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "easygym_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordSignupTransition counts one signup attempt. action is join, cancel
// or switch; result is ok or rejected.
func RecordSignupTransition(action, result string) {
	SignupTransitionsTotal.WithLabelValues(action, result).Inc()
}

func RecordSlotsPublished(count int) {
	SlotsPublishedTotal.Add(float64(count))
}

func RecordPayment(method string) {
	PaymentsRecordedTotal.WithLabelValues(method).Inc()
}

func RecordNotification(notificationType, status string) {
	NotificationsSentTotal.WithLabelValues(notificationType, status).Inc()
}
