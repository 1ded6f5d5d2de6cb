package transaction

import (
	"encoding/json"
	"time"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/catalog"
)

type PaymentStatus string

const (
	StatusPending PaymentStatus = "pending"
	StatusPaid    PaymentStatus = "paid"
	StatusFailed  PaymentStatus = "failed"
	StatusExpired PaymentStatus = "expired"
)

func (s PaymentStatus) Terminal() bool {
	return s != StatusPending
}

type Transaction struct {
	ID            string        `db:"id" json:"id"`
	OrderID       string        `db:"order_id" json:"order_id"`
	UserID        int           `db:"user_id" json:"user_id"`
	Type          catalog.Kind  `db:"transaction_type" json:"transaction_type"`
	ReferenceID   int           `db:"reference_id" json:"reference_id"`
	TotalPrice    int64         `db:"total_price" json:"total_price"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
	SnapToken     string        `db:"snap_token" json:"snap_token"`
	RedirectURL   string        `db:"redirect_url" json:"redirect_url"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// Payment is one gateway notification, logged verbatim. Rows are append-only:
// redelivered webhooks add rows, they never rewrite history.
type Payment struct {
	ID                int             `db:"id" json:"id"`
	TransactionID     string          `db:"transaction_id" json:"transaction_id"`
	PaymentType       string          `db:"payment_type" json:"payment_type"`
	TransactionStatus string          `db:"transaction_status" json:"transaction_status"`
	FraudStatus       string          `db:"fraud_status" json:"fraud_status"`
	RawPayload        json.RawMessage `db:"raw_payload" json:"raw_payload"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
}

type CreateRequest struct {
	Type        string `json:"transaction_type" binding:"required,oneof=trip travel"`
	ReferenceID int    `json:"reference_id" binding:"required,min=1"`
}

// Detail is a transaction with its notification history.
type Detail struct {
	Transaction
	Payments []Payment `json:"payments"`
}
