package sweeper

import (
	"context"
	"time"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/booking"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/logger"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/metrics"
)

// BookingStore is the slice of the booking repository the sweeper needs.
type BookingStore interface {
	ListExpiredIDs(ctx context.Context, now time.Time) ([]string, error)
	UpdateStatus(ctx context.Context, id string, from, to booking.Status) (bool, error)
}

// Sweeper expires stale unpaid bookings on a fixed interval. Each row moves
// through the same compare-and-set transition the lazy-expiry path uses, so
// a concurrent proof upload and a sweep agree on exactly one winner.
type Sweeper struct {
	store    BookingStore
	interval time.Duration
	now      func() time.Time
}

func New(store BookingStore, interval time.Duration) *Sweeper {
	return &Sweeper{
		store:    store,
		interval: interval,
		now:      time.Now,
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	logger.Info("expiry sweeper started", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("expiry sweeper stopped")
			return
		case <-ticker.C:
			count, err := s.SweepExpired(ctx)
			if err != nil {
				logger.Error("expiry sweep failed", "error", err)
				continue
			}
			if count > 0 {
				logger.Info("expired stale bookings", "count", count)
			}
		}
	}
}

// SweepExpired returns how many bookings it transitioned. A failure on one
// row is logged and the rest proceed; only the initial scan can fail the
// whole sweep.
func (s *Sweeper) SweepExpired(ctx context.Context) (int, error) {
	ids, err := s.store.ListExpiredIDs(ctx, s.now())
	if err != nil {
		return 0, err
	}

	count := 0
	for _, id := range ids {
		moved, err := s.store.UpdateStatus(ctx, id, booking.StatusAwaitingPayment, booking.StatusExpired)
		if err != nil {
			logger.Error("failed to expire booking", "booking_id", id, "error", err)
			continue
		}
		// moved=false means a customer or another sweep got there first.
		if moved {
			count++
		}
	}

	if count > 0 {
		metrics.RecordSweepExpired(count)
	}
	return count, nil
}
