package transaction

import "context"

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Transaction, error)
	GetByOrderID(ctx context.Context, orderID string) (*Transaction, error)
	ListByUser(ctx context.Context, userID int) ([]Transaction, error)

	SetToken(ctx context.Context, id, snapToken, redirectURL string) error

	// UpdatePaymentStatus performs the compare-and-set transition
	// `from -> to` and reports whether the row actually moved.
	UpdatePaymentStatus(ctx context.Context, id string, from, to PaymentStatus) (bool, error)

	AddPayment(ctx context.Context, p *Payment) error
	PaymentsByTransaction(ctx context.Context, transactionID string) ([]Payment, error)
}
