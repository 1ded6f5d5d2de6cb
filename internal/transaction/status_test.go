package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapGatewayStatus(t *testing.T) {
	tests := []struct {
		name              string
		transactionStatus string
		fraudStatus       string
		expected          PaymentStatus
	}{
		{"settlement is paid", "settlement", "", StatusPaid},
		{"accepted capture is paid", "capture", "accept", StatusPaid},
		{"challenged capture stays pending", "capture", "challenge", StatusPending},
		{"cancel is failed", "cancel", "", StatusFailed},
		{"deny is failed", "deny", "accept", StatusFailed},
		{"expire is expired", "expire", "", StatusExpired},
		{"pending stays pending", "pending", "", StatusPending},
		{"unknown status stays pending", "refund", "", StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapGatewayStatus(tt.transactionStatus, tt.fraudStatus))
		})
	}
}

func TestPaymentStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusPaid.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.True(t, StatusExpired.Terminal())
}
