package booking

import (
	"time"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/catalog"
)

type Status string

const (
	StatusAwaitingPayment    Status = "awaiting_payment"
	StatusAwaitingValidation Status = "awaiting_validation"
	StatusPaid               Status = "paid"
	StatusRejected           Status = "rejected"
	StatusExpired            Status = "expired"
)

// Terminal reports whether no further transition may leave s.
func (s Status) Terminal() bool {
	switch s {
	case StatusPaid, StatusRejected, StatusExpired:
		return true
	}
	return false
}

type Booking struct {
	ID              string       `db:"id" json:"id"`
	BookingCode     string       `db:"booking_code" json:"booking_code"`
	UserID          int          `db:"user_id" json:"user_id"`
	CatalogType     catalog.Kind `db:"catalog_type" json:"catalog_type"`
	CatalogID       int          `db:"catalog_id" json:"catalog_id"`
	CustomerName    string       `db:"customer_name" json:"customer_name"`
	Phone           string       `db:"phone" json:"phone"`
	DepartureDate   time.Time    `db:"departure_date" json:"departure_date"`
	PartySize       int          `db:"party_size" json:"party_size"`
	Notes           string       `db:"notes" json:"notes"`
	TotalPrice      int64        `db:"total_price" json:"total_price"`
	Status          Status       `db:"status" json:"status"`
	RejectionReason *string      `db:"rejection_reason" json:"rejection_reason,omitempty"`
	ExpiredAt       time.Time    `db:"expired_at" json:"expired_at"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updated_at"`
}

type PaymentProof struct {
	ID         int       `db:"id" json:"id"`
	BookingID  string    `db:"booking_id" json:"booking_id"`
	ImageURL   string    `db:"image_url" json:"image_url"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// Detail is a booking with its proof history and the resolved catalog name.
type Detail struct {
	Booking
	CatalogName string         `json:"catalog_name"`
	Proofs      []PaymentProof `json:"proofs"`
}

type CreateRequest struct {
	CatalogType   string `json:"catalog_type" binding:"required,oneof=trip travel"`
	CatalogID     int    `json:"catalog_id" binding:"required,min=1"`
	CustomerName  string `json:"customer_name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	DepartureDate string `json:"departure_date" binding:"required"`
	PartySize     int    `json:"party_size" binding:"required,min=1"`
	Notes         string `json:"notes"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CreateResponse struct {
	Booking *Booking          `json:"booking"`
	Catalog *catalog.Snapshot `json:"catalog"`
}

// Statistics aggregates booking counts per status plus realized revenue.
type Statistics struct {
	AwaitingPayment    int   `db:"awaiting_payment" json:"awaiting_payment"`
	AwaitingValidation int   `db:"awaiting_validation" json:"awaiting_validation"`
	Paid               int   `db:"paid" json:"paid"`
	Rejected           int   `db:"rejected" json:"rejected"`
	Expired            int   `db:"expired" json:"expired"`
	Revenue            int64 `db:"revenue" json:"revenue"`
}
