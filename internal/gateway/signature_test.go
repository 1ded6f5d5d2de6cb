package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	const serverKey = "SB-Mid-server-testkey"

	sig := Signature("TRIP-1756700000-AAAA1111", "200", "500000.00", serverKey)
	assert.Len(t, sig, 128)

	t.Run("accepts a matching signature", func(t *testing.T) {
		assert.True(t, VerifySignature("TRIP-1756700000-AAAA1111", "200", "500000.00", sig, serverKey))
	})

	t.Run("rejects a tampered gross amount", func(t *testing.T) {
		assert.False(t, VerifySignature("TRIP-1756700000-AAAA1111", "200", "1.00", sig, serverKey))
	})

	t.Run("rejects a signature from another order", func(t *testing.T) {
		other := Signature("TRV-1756700000-BBBB2222", "200", "500000.00", serverKey)
		assert.False(t, VerifySignature("TRIP-1756700000-AAAA1111", "200", "500000.00", other, serverKey))
	})

	t.Run("rejects a different server key", func(t *testing.T) {
		assert.False(t, VerifySignature("TRIP-1756700000-AAAA1111", "200", "500000.00", sig, "another-key"))
	})
}

func TestParseWebhook(t *testing.T) {
	t.Run("parses a full notification and keeps the raw body", func(t *testing.T) {
		raw := []byte(`{
			"order_id": "TRIP-1756700000-AAAA1111",
			"status_code": "200",
			"gross_amount": "500000.00",
			"signature_key": "abc",
			"transaction_status": "settlement",
			"fraud_status": "accept",
			"payment_type": "bank_transfer"
		}`)

		payload, err := ParseWebhook(raw)
		assert.NoError(t, err)
		assert.Equal(t, "TRIP-1756700000-AAAA1111", payload.OrderID)
		assert.Equal(t, "settlement", payload.TransactionStatus)
		assert.JSONEq(t, string(raw), string(payload.Raw))
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		_, err := ParseWebhook([]byte(`{`))
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("rejects a notification without an order id", func(t *testing.T) {
		_, err := ParseWebhook([]byte(`{"transaction_status": "settlement"}`))
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("rejects a notification without a status", func(t *testing.T) {
		_, err := ParseWebhook([]byte(`{"order_id": "TRIP-1"}`))
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})
}
