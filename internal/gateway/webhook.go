package gateway

import (
	"encoding/json"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/apperr"
)

// WebhookPayload is the subset of a Midtrans HTTP notification the engine
// acts on; Raw keeps the full body for the audit trail.
type WebhookPayload struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`

	Raw json.RawMessage `json:"-"`
}

var ErrMalformedPayload = apperr.Validation("malformed webhook payload")

func ParseWebhook(raw []byte) (*WebhookPayload, error) {
	var payload WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, ErrMalformedPayload
	}
	if payload.OrderID == "" || payload.TransactionStatus == "" {
		return nil, ErrMalformedPayload
	}

	payload.Raw = append(json.RawMessage(nil), raw...)
	return &payload, nil
}
