package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/apperr"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/catalog"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/logger"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/metrics"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/notification"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/storage"
)

const dateLayout = "2006-01-02"

var (
	ErrNotOwner         = apperr.Forbidden("booking does not belong to caller")
	ErrNotAwaitingProof = apperr.InvalidState("booking is not awaiting payment")
	ErrNotValidatable   = apperr.InvalidState("booking is not awaiting validation")
	ErrBookingExpired   = apperr.Expired("booking has expired")
	ErrPastDeparture    = apperr.Validation("departure date must be in the future")
	ErrInactiveItem     = apperr.NotFound("catalog item is not available")
)

type Service interface {
	Create(ctx context.Context, userID int, req CreateRequest) (*Booking, *catalog.Snapshot, error)
	UploadProof(ctx context.Context, userID int, bookingID string, image []byte, filename string) (*PaymentProof, error)
	ListForUser(ctx context.Context, userID int) ([]Booking, error)
	Detail(ctx context.Context, userID int, bookingID string) (*Detail, error)
	AdminList(ctx context.Context, status Status) ([]Booking, error)
	AdminDetail(ctx context.Context, bookingID string) (*Detail, error)
	Approve(ctx context.Context, bookingID string) (*Booking, error)
	Reject(ctx context.Context, bookingID, reason string) (*Booking, error)
	Statistics(ctx context.Context) (*Statistics, error)
}

type service struct {
	repo     Repository
	catalog  catalog.Resolver
	store    storage.Storage
	notifier notification.Emitter

	ttl          time.Duration
	storeTimeout time.Duration
	now          func() time.Time
}

func NewService(
	repo Repository,
	resolver catalog.Resolver,
	store storage.Storage,
	notifier notification.Emitter,
	ttl time.Duration,
	storeTimeout time.Duration,
) Service {
	return &service{
		repo:         repo,
		catalog:      resolver,
		store:        store,
		notifier:     notifier,
		ttl:          ttl,
		storeTimeout: storeTimeout,
		now:          time.Now,
	}
}

func (s *service) Create(ctx context.Context, userID int, req CreateRequest) (*Booking, *catalog.Snapshot, error) {
	kind, err := catalog.ParseKind(req.CatalogType)
	if err != nil {
		return nil, nil, err
	}

	snap, err := s.catalog.Resolve(ctx, catalog.Ref{Kind: kind, ID: req.CatalogID})
	if err != nil {
		return nil, nil, err
	}
	if !snap.Active {
		return nil, nil, ErrInactiveItem
	}

	if req.PartySize < 1 || req.PartySize > kind.MaxPartySize() {
		return nil, nil, apperr.Validation(
			fmt.Sprintf("party size must be between 1 and %d", kind.MaxPartySize()))
	}

	departure, err := time.Parse(dateLayout, req.DepartureDate)
	if err != nil {
		return nil, nil, apperr.Validation("departure date must be in YYYY-MM-DD format")
	}

	now := s.now()
	if !departure.After(now) {
		return nil, nil, ErrPastDeparture
	}

	// Price is frozen here; later catalog edits never touch this booking.
	b := &Booking{
		ID:            uuid.NewString(),
		UserID:        userID,
		CatalogType:   kind,
		CatalogID:     req.CatalogID,
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		DepartureDate: departure,
		PartySize:     req.PartySize,
		Notes:         req.Notes,
		TotalPrice:    snap.UnitPrice * int64(req.PartySize),
		Status:        StatusAwaitingPayment,
		ExpiredAt:     now.Add(s.ttl),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, nil, err
	}

	metrics.RecordBookingCreated(string(kind))
	s.notifier.NotifyAdmins(ctx, notification.KindOrderCreated,
		"New booking "+b.BookingCode,
		fmt.Sprintf("%s booked %s for %d (Rp%d), awaiting payment.",
			b.CustomerName, snap.Name, b.PartySize, b.TotalPrice))

	return b, snap, nil
}

func (s *service) UploadProof(ctx context.Context, userID int, bookingID string, image []byte, filename string) (*PaymentProof, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrNotOwner
	}
	if b.Status != StatusAwaitingPayment {
		return nil, ErrNotAwaitingProof
	}

	// Lazy expiry: a stale booking expires on read, not only when the
	// sweeper gets to it. The CAS keeps this race-safe against the sweeper.
	if s.now().After(b.ExpiredAt) {
		if _, err := s.repo.UpdateStatus(ctx, b.ID, StatusAwaitingPayment, StatusExpired); err != nil {
			logger.Error("lazy expiry failed", "booking_id", b.ID, "error", err)
		} else {
			metrics.RecordBookingTransition(string(StatusExpired))
		}
		return nil, ErrBookingExpired
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	url, err := s.store.Put(storeCtx, image, filename)
	if err != nil {
		return nil, apperr.Upstream("failed to store payment proof", err)
	}

	moved, err := s.repo.UpdateStatus(ctx, b.ID, StatusAwaitingPayment, StatusAwaitingValidation)
	if err != nil {
		return nil, err
	}
	if !moved {
		// Lost the race: the sweeper (or a concurrent upload) got there
		// first. Drop the orphaned blob and report the real state.
		if delErr := s.store.Delete(ctx, url); delErr != nil {
			logger.Error("failed to delete orphaned proof", "url", url, "error", delErr)
		}

		current, err := s.repo.GetByID(ctx, b.ID)
		if err == nil && current.Status == StatusExpired {
			return nil, ErrBookingExpired
		}
		return nil, ErrNotAwaitingProof
	}

	metrics.RecordBookingTransition(string(StatusAwaitingValidation))

	proof := &PaymentProof{BookingID: b.ID, ImageURL: url}
	if err := s.repo.AddProof(ctx, proof); err != nil {
		return nil, err
	}

	s.notifier.NotifyAdmins(ctx, notification.KindProofUploaded,
		"Payment proof for "+b.BookingCode,
		fmt.Sprintf("%s uploaded a transfer proof for booking %s.", b.CustomerName, b.BookingCode))

	return proof, nil
}

func (s *service) ListForUser(ctx context.Context, userID int) ([]Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Detail(ctx context.Context, userID int, bookingID string) (*Detail, error) {
	detail, err := s.AdminDetail(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if detail.UserID != userID {
		return nil, ErrNotOwner
	}
	return detail, nil
}

func (s *service) AdminList(ctx context.Context, status Status) ([]Booking, error) {
	return s.repo.List(ctx, status)
}

func (s *service) AdminDetail(ctx context.Context, bookingID string) (*Detail, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	proofs, err := s.repo.ProofsByBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Booking: *b, Proofs: proofs}
	if snap, err := s.catalog.Resolve(ctx, catalog.Ref{Kind: b.CatalogType, ID: b.CatalogID}); err == nil {
		detail.CatalogName = snap.Name
	}

	return detail, nil
}

func (s *service) Approve(ctx context.Context, bookingID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	moved, err := s.repo.UpdateStatus(ctx, b.ID, StatusAwaitingValidation, StatusPaid)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrNotValidatable
	}

	b.Status = StatusPaid
	metrics.RecordBookingTransition(string(StatusPaid))

	name := s.catalogName(ctx, b)
	s.notifier.NotifyUser(ctx, b.UserID, notification.KindPaymentApproved,
		"Payment approved",
		fmt.Sprintf("Your payment of Rp%d for %s (%s) has been approved. Have a nice trip!",
			b.TotalPrice, name, b.BookingCode))

	return b, nil
}

func (s *service) Reject(ctx context.Context, bookingID, reason string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	moved, err := s.repo.MarkRejected(ctx, b.ID, reason)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, ErrNotValidatable
	}

	b.Status = StatusRejected
	b.RejectionReason = &reason
	metrics.RecordBookingTransition(string(StatusRejected))

	name := s.catalogName(ctx, b)
	s.notifier.NotifyUser(ctx, b.UserID, notification.KindPaymentRejected,
		"Payment rejected",
		fmt.Sprintf("Your payment of Rp%d for %s (%s) was rejected: %s",
			b.TotalPrice, name, b.BookingCode, reason))

	return b, nil
}

func (s *service) Statistics(ctx context.Context) (*Statistics, error) {
	return s.repo.Statistics(ctx)
}

func (s *service) catalogName(ctx context.Context, b *Booking) string {
	snap, err := s.catalog.Resolve(ctx, catalog.Ref{Kind: b.CatalogType, ID: b.CatalogID})
	if err != nil {
		return string(b.CatalogType)
	}
	return snap.Name
}
