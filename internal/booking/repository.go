package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/apperr"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/db"
)

var ErrBookingNotFound = apperr.NotFound("booking not found")

const codeAttempts = 3

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

// Create inserts b, assigning a booking code. The code carries a short random
// suffix, so a unique-constraint collision is possible; the insert retries
// with a fresh code instead of surfacing the conflict.
func (r *repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (
			id, booking_code, user_id, catalog_type, catalog_id,
			customer_name, phone, departure_date, party_size, notes,
			total_price, status, expired_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	var lastErr error
	for attempt := 0; attempt < codeAttempts; attempt++ {
		b.BookingCode = newBookingCode(string(b.CatalogType), time.Now())

		err := r.db.QueryRowxContext(ctx, query,
			b.ID, b.BookingCode, b.UserID, b.CatalogType, b.CatalogID,
			b.CustomerName, b.Phone, b.DepartureDate, b.PartySize, b.Notes,
			b.TotalPrice, b.Status, b.ExpiredAt,
		).Scan(&b.CreatedAt, &b.UpdatedAt)
		if err == nil {
			return nil
		}
		if !db.IsUniqueViolation(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("booking code collision after %d attempts: %w", codeAttempts, lastErr)
}

func newBookingCode(catalogType string, now time.Time) string {
	prefix := strings.ToUpper(catalogType[:1])
	suffix := strings.ToUpper(uuid.NewString()[:6])
	return fmt.Sprintf("BK%s-%s-%s", prefix, now.Format("060102"), suffix)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `
		SELECT id, booking_code, user_id, catalog_type, catalog_id,
			customer_name, phone, departure_date, party_size, notes,
			total_price, status, rejection_reason, expired_at, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &b, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]Booking, error) {
	query := `
		SELECT id, booking_code, user_id, catalog_type, catalog_id,
			customer_name, phone, departure_date, party_size, notes,
			total_price, status, rejection_reason, expired_at, created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) List(ctx context.Context, status Status) ([]Booking, error) {
	query := `
		SELECT id, booking_code, user_id, catalog_type, catalog_id,
			customer_name, phone, departure_date, party_size, notes,
			total_price, status, rejection_reason, expired_at, created_at, updated_at
		FROM bookings
	`

	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, from, to Status) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *repository) MarkRejected(ctx context.Context, id, reason string) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'rejected', rejection_reason = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'awaiting_validation'
	`

	result, err := r.db.ExecContext(ctx, query, id, reason)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *repository) AddProof(ctx context.Context, p *PaymentProof) error {
	query := `
		INSERT INTO payment_proofs (booking_id, image_url)
		VALUES ($1, $2)
		RETURNING id, uploaded_at
	`

	return r.db.QueryRowxContext(ctx, query, p.BookingID, p.ImageURL).Scan(&p.ID, &p.UploadedAt)
}

func (r *repository) ProofsByBooking(ctx context.Context, bookingID string) ([]PaymentProof, error) {
	query := `
		SELECT id, booking_id, image_url, uploaded_at
		FROM payment_proofs
		WHERE booking_id = $1
		ORDER BY uploaded_at DESC
	`

	var proofs []PaymentProof
	if err := r.db.SelectContext(ctx, &proofs, query, bookingID); err != nil {
		return nil, err
	}

	return proofs, nil
}

func (r *repository) ListExpiredIDs(ctx context.Context, now time.Time) ([]string, error) {
	query := `
		SELECT id
		FROM bookings
		WHERE status = 'awaiting_payment' AND expired_at < $1
	`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, now); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *repository) Statistics(ctx context.Context) (*Statistics, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'awaiting_payment') AS awaiting_payment,
			COUNT(*) FILTER (WHERE status = 'awaiting_validation') AS awaiting_validation,
			COUNT(*) FILTER (WHERE status = 'paid') AS paid,
			COUNT(*) FILTER (WHERE status = 'rejected') AS rejected,
			COUNT(*) FILTER (WHERE status = 'expired') AS expired,
			COALESCE(SUM(total_price) FILTER (WHERE status = 'paid'), 0) AS revenue
		FROM bookings
	`

	var stats Statistics
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, err
	}

	return &stats, nil
}
