package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caturjaya_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "caturjaya_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caturjaya_bookings_created_total",
			Help: "Total number of manual bookings created",
		},
		[]string{"catalog_type"},
	)

	BookingTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caturjaya_booking_transitions_total",
			Help: "Total number of booking status transitions",
		},
		[]string{"to_status"},
	)

	TransactionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caturjaya_transactions_created_total",
			Help: "Total number of gateway transactions created",
		},
		[]string{"transaction_type"},
	)

	WebhooksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caturjaya_webhooks_total",
			Help: "Total number of gateway webhook notifications processed",
		},
		[]string{"result"},
	)

	SweepExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "caturjaya_sweep_expired_total",
			Help: "Total number of bookings expired by the sweeper",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caturjaya_notifications_total",
			Help: "Total number of notifications emitted",
		},
		[]string{"kind", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "caturjaya_notification_queue_length",
			Help: "Current length of the notification delivery queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingCreated(catalogType string) {
	BookingsCreatedTotal.WithLabelValues(catalogType).Inc()
}

func RecordBookingTransition(toStatus string) {
	BookingTransitionsTotal.WithLabelValues(toStatus).Inc()
}

func RecordTransactionCreated(transactionType string) {
	TransactionsCreatedTotal.WithLabelValues(transactionType).Inc()
}

func RecordWebhook(result string) {
	WebhooksTotal.WithLabelValues(result).Inc()
}

func RecordSweepExpired(count int) {
	SweepExpiredTotal.Add(float64(count))
}

func RecordNotification(kind, status string) {
	NotificationsTotal.WithLabelValues(kind, status).Inc()
}
