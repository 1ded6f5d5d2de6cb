package notification

import "time"

const (
	KindOrderCreated    = "order_created"
	KindProofUploaded   = "proof_uploaded"
	KindPaymentApproved = "payment_approved"
	KindPaymentRejected = "payment_rejected"
	KindPaymentSuccess  = "payment_success"
	KindPaymentFailed   = "payment_failed"
)

type Notification struct {
	ID          int        `db:"id" json:"id"`
	RecipientID int        `db:"recipient_id" json:"recipient_id"`
	Kind        string     `db:"kind" json:"kind"`
	Title       string     `db:"title" json:"title"`
	Message     string     `db:"message" json:"message"`
	IsRead      bool       `db:"is_read" json:"is_read"`
	DeliveredAt *time.Time `db:"delivered_at" json:"delivered_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// deliveryJob is what goes onto the redis queue for the dispatcher.
type deliveryJob struct {
	NotificationID int       `json:"notification_id"`
	RecipientID    int       `json:"recipient_id"`
	Kind           string    `json:"kind"`
	Title          string    `json:"title"`
	Tries          int       `json:"tries"`
	Created        time.Time `json:"created"`
}
