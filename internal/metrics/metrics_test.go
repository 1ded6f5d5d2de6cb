package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/bookings", "200", 0.5)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/bookings", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/auth/login", "200", 0.1)
	RecordHTTPRequest("POST", "/auth/login", "200", 0.2)
	RecordHTTPRequest("POST", "/auth/login", "401", 0.05)

	successCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "200"))
	failCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "401"))

	assert.Equal(t, float64(2), successCount)
	assert.Equal(t, float64(1), failCount)
}

func TestRecordBookingCreated(t *testing.T) {
	BookingsCreatedTotal.Reset()

	RecordBookingCreated("trip")
	RecordBookingCreated("trip")
	RecordBookingCreated("travel")

	assert.Equal(t, float64(2), testutil.ToFloat64(BookingsCreatedTotal.WithLabelValues("trip")))
	assert.Equal(t, float64(1), testutil.ToFloat64(BookingsCreatedTotal.WithLabelValues("travel")))
}

func TestRecordBookingTransition(t *testing.T) {
	BookingTransitionsTotal.Reset()

	RecordBookingTransition("paid")
	RecordBookingTransition("expired")
	RecordBookingTransition("expired")

	assert.Equal(t, float64(1), testutil.ToFloat64(BookingTransitionsTotal.WithLabelValues("paid")))
	assert.Equal(t, float64(2), testutil.ToFloat64(BookingTransitionsTotal.WithLabelValues("expired")))
}

func TestRecordWebhook(t *testing.T) {
	WebhooksTotal.Reset()

	RecordWebhook("paid")
	RecordWebhook("bad_signature")
	RecordWebhook("noop")

	assert.Equal(t, float64(1), testutil.ToFloat64(WebhooksTotal.WithLabelValues("paid")))
	assert.Equal(t, float64(1), testutil.ToFloat64(WebhooksTotal.WithLabelValues("bad_signature")))
	assert.Equal(t, float64(1), testutil.ToFloat64(WebhooksTotal.WithLabelValues("noop")))
}

func TestRecordSweepExpired(t *testing.T) {
	before := testutil.ToFloat64(SweepExpiredTotal)

	RecordSweepExpired(3)

	assert.Equal(t, before+3, testutil.ToFloat64(SweepExpiredTotal))
}

func TestRecordNotification(t *testing.T) {
	NotificationsTotal.Reset()

	RecordNotification("payment_success", "queued")
	RecordNotification("payment_success", "delivered")

	assert.Equal(t, float64(1), testutil.ToFloat64(NotificationsTotal.WithLabelValues("payment_success", "queued")))
	assert.Equal(t, float64(1), testutil.ToFloat64(NotificationsTotal.WithLabelValues("payment_success", "delivered")))
}
