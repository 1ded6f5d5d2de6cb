package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/apperr"
)

var ErrTransactionNotFound = apperr.NotFound("transaction not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Create(ctx context.Context, t *Transaction) error {
	query := `
		INSERT INTO transactions (
			id, order_id, user_id, transaction_type, reference_id,
			total_price, payment_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	return r.db.QueryRowxContext(ctx, query,
		t.ID, t.OrderID, t.UserID, t.Type, t.ReferenceID,
		t.TotalPrice, t.PaymentStatus,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM transactions
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *repository) GetByID(ctx context.Context, id string) (*Transaction, error) {
	query := `
		SELECT id, order_id, user_id, transaction_type, reference_id,
			total_price, payment_status, snap_token, redirect_url, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`

	var t Transaction
	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	return &t, nil
}

func (r *repository) GetByOrderID(ctx context.Context, orderID string) (*Transaction, error) {
	query := `
		SELECT id, order_id, user_id, transaction_type, reference_id,
			total_price, payment_status, snap_token, redirect_url, created_at, updated_at
		FROM transactions
		WHERE order_id = $1
	`

	var t Transaction
	if err := r.db.GetContext(ctx, &t, query, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	return &t, nil
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]Transaction, error) {
	query := `
		SELECT id, order_id, user_id, transaction_type, reference_id,
			total_price, payment_status, snap_token, redirect_url, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var transactions []Transaction
	if err := r.db.SelectContext(ctx, &transactions, query, userID); err != nil {
		return nil, err
	}

	return transactions, nil
}

func (r *repository) SetToken(ctx context.Context, id, snapToken, redirectURL string) error {
	query := `
		UPDATE transactions
		SET snap_token = $2, redirect_url = $3, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, snapToken, redirectURL)
	return err
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id string, from, to PaymentStatus) (bool, error) {
	query := `
		UPDATE transactions
		SET payment_status = $3, updated_at = NOW()
		WHERE id = $1 AND payment_status = $2
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

func (r *repository) AddPayment(ctx context.Context, p *Payment) error {
	query := `
		INSERT INTO payments (transaction_id, payment_type, transaction_status, fraud_status, raw_payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	return r.db.QueryRowxContext(ctx, query,
		p.TransactionID, p.PaymentType, p.TransactionStatus, p.FraudStatus, []byte(p.RawPayload),
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *repository) PaymentsByTransaction(ctx context.Context, transactionID string) ([]Payment, error) {
	query := `
		SELECT id, transaction_id, payment_type, transaction_status, fraud_status, raw_payload, created_at
		FROM payments
		WHERE transaction_id = $1
		ORDER BY created_at ASC
	`

	var payments []Payment
	if err := r.db.SelectContext(ctx, &payments, query, transactionID); err != nil {
		return nil, err
	}

	return payments, nil
}
