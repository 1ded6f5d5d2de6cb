package booking

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByUser(ctx context.Context, userID int) ([]Booking, error)
	List(ctx context.Context, status Status) ([]Booking, error)

	// UpdateStatus performs the compare-and-set transition
	// `from -> to` and reports whether the row actually moved.
	UpdateStatus(ctx context.Context, id string, from, to Status) (bool, error)
	// MarkRejected is the CAS transition awaiting_validation -> rejected
	// that also records the reason.
	MarkRejected(ctx context.Context, id, reason string) (bool, error)

	AddProof(ctx context.Context, p *PaymentProof) error
	ProofsByBooking(ctx context.Context, bookingID string) ([]PaymentProof, error)

	ListExpiredIDs(ctx context.Context, now time.Time) ([]string, error)
	Statistics(ctx context.Context) (*Statistics, error)
}
