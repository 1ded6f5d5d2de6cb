package notification

import "context"

type Repository interface {
	Create(ctx context.Context, recipientID int, kind, title, message string) (*Notification, error)
	ListByRecipient(ctx context.Context, recipientID int) ([]Notification, error)
	MarkRead(ctx context.Context, id, recipientID int) (bool, error)
	MarkDelivered(ctx context.Context, id int) error
}
