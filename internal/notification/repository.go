package notification

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, recipientID int, kind, title, message string) (*Notification, error) {
	query := `
		INSERT INTO notifications (recipient_id, kind, title, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, recipient_id, kind, title, message, is_read, delivered_at, created_at
	`

	var n Notification
	if err := r.db.GetContext(ctx, &n, query, recipientID, kind, title, message); err != nil {
		return nil, err
	}

	return &n, nil
}

func (r *repository) ListByRecipient(ctx context.Context, recipientID int) ([]Notification, error) {
	query := `
		SELECT id, recipient_id, kind, title, message, is_read, delivered_at, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
	`

	var notifications []Notification
	if err := r.db.SelectContext(ctx, &notifications, query, recipientID); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *repository) MarkRead(ctx context.Context, id, recipientID int) (bool, error) {
	query := `
		UPDATE notifications
		SET is_read = true
		WHERE id = $1 AND recipient_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, recipientID)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *repository) MarkDelivered(ctx context.Context, id int) error {
	query := `
		UPDATE notifications
		SET delivered_at = NOW()
		WHERE id = $1 AND delivered_at IS NULL
	`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
