package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/apperr"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/catalog"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/db"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/gateway"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/logger"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/metrics"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/notification"
)

const orderIDAttempts = 3

var (
	ErrNotOwner     = apperr.Forbidden("transaction does not belong to caller")
	ErrBadSignature = apperr.InvalidSignature("webhook signature mismatch")
	ErrInactiveItem = apperr.NotFound("catalog item is not available")
)

// Customer carries the payer identity forwarded to the gateway.
type Customer struct {
	Name  string
	Email string
}

type Service interface {
	Create(ctx context.Context, userID int, customer Customer, req CreateRequest) (*Transaction, error)
	ListForUser(ctx context.Context, userID int) ([]Transaction, error)
	Detail(ctx context.Context, userID int, transactionID string) (*Detail, error)
	IngestWebhook(ctx context.Context, raw []byte) error
}

type service struct {
	repo     Repository
	catalog  catalog.Resolver
	gateway  gateway.Client
	notifier notification.Emitter

	gatewayTimeout time.Duration
	now            func() time.Time
}

func NewService(
	repo Repository,
	resolver catalog.Resolver,
	gatewayClient gateway.Client,
	notifier notification.Emitter,
	gatewayTimeout time.Duration,
) Service {
	return &service{
		repo:           repo,
		catalog:        resolver,
		gateway:        gatewayClient,
		notifier:       notifier,
		gatewayTimeout: gatewayTimeout,
		now:            time.Now,
	}
}

func (s *service) Create(ctx context.Context, userID int, customer Customer, req CreateRequest) (*Transaction, error) {
	kind, err := catalog.ParseKind(req.Type)
	if err != nil {
		return nil, err
	}

	snap, err := s.catalog.Resolve(ctx, catalog.Ref{Kind: kind, ID: req.ReferenceID})
	if err != nil {
		return nil, err
	}
	if !snap.Active {
		return nil, ErrInactiveItem
	}

	t := &Transaction{
		ID:            uuid.NewString(),
		UserID:        userID,
		Type:          kind,
		ReferenceID:   req.ReferenceID,
		TotalPrice:    snap.UnitPrice,
		PaymentStatus: StatusPending,
	}

	if err := s.createWithUniqueOrderID(ctx, t); err != nil {
		return nil, err
	}

	tokenCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	token, err := s.gateway.RequestToken(tokenCtx, gateway.TokenRequest{
		OrderID:       t.OrderID,
		GrossAmount:   t.TotalPrice,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		ItemID:        fmt.Sprintf("%s-%d", kind, req.ReferenceID),
		ItemName:      snap.Name,
		UnitPrice:     snap.UnitPrice,
		Qty:           1,
	})
	if err != nil {
		// A transaction without a payment handle is unusable; undo the
		// insert and surface the gateway failure.
		if delErr := s.repo.Delete(ctx, t.ID); delErr != nil {
			logger.Error("compensating delete failed",
				"transaction_id", t.ID, "order_id", t.OrderID, "error", delErr)
		}
		return nil, err
	}

	if err := s.repo.SetToken(ctx, t.ID, token.Token, token.RedirectURL); err != nil {
		return nil, err
	}
	t.SnapToken = token.Token
	t.RedirectURL = token.RedirectURL

	metrics.RecordTransactionCreated(string(kind))
	return t, nil
}

func (s *service) createWithUniqueOrderID(ctx context.Context, t *Transaction) error {
	var lastErr error
	for attempt := 0; attempt < orderIDAttempts; attempt++ {
		t.OrderID = newOrderID(t.Type, s.now())
		err := s.repo.Create(ctx, t)
		if err == nil {
			return nil
		}
		if !db.IsUniqueViolation(err) {
			return err
		}
		lastErr = err
	}
	return apperr.Upstream("could not allocate a unique order id", lastErr)
}

func newOrderID(kind catalog.Kind, now time.Time) string {
	prefix := "TRIP"
	if kind == catalog.KindTravel {
		prefix = "TRV"
	}
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("%s-%d-%s", prefix, now.Unix(), suffix)
}

func (s *service) ListForUser(ctx context.Context, userID int) ([]Transaction, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Detail(ctx context.Context, userID int, transactionID string) (*Detail, error) {
	t, err := s.repo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrNotOwner
	}

	payments, err := s.repo.PaymentsByTransaction(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	return &Detail{Transaction: *t, Payments: payments}, nil
}

// IngestWebhook applies one gateway notification. It is safe under
// at-least-once delivery: the signature check and status mapping are pure,
// the status move is a CAS from pending, and a replay only appends another
// audit row.
func (s *service) IngestWebhook(ctx context.Context, raw []byte) error {
	payload, err := gateway.ParseWebhook(raw)
	if err != nil {
		metrics.RecordWebhook("malformed")
		return err
	}

	if !s.gateway.VerifySignature(payload.OrderID, payload.StatusCode, payload.GrossAmount, payload.SignatureKey) {
		metrics.RecordWebhook("bad_signature")
		return ErrBadSignature
	}

	t, err := s.repo.GetByOrderID(ctx, payload.OrderID)
	if err != nil {
		metrics.RecordWebhook("unknown_order")
		return err
	}

	mapped := MapGatewayStatus(payload.TransactionStatus, payload.FraudStatus)

	transitioned := false
	if mapped != StatusPending {
		transitioned, err = s.repo.UpdatePaymentStatus(ctx, t.ID, StatusPending, mapped)
		if err != nil {
			return err
		}
	}

	// The audit row is appended on every delivery, replays included.
	payment := &Payment{
		TransactionID:     t.ID,
		PaymentType:       payload.PaymentType,
		TransactionStatus: payload.TransactionStatus,
		FraudStatus:       payload.FraudStatus,
		RawPayload:        payload.Raw,
	}
	if err := s.repo.AddPayment(ctx, payment); err != nil {
		// Non-2xx makes the gateway redeliver; the CAS already happened,
		// so the retry converges on just the audit append.
		return err
	}

	if !transitioned {
		metrics.RecordWebhook("noop")
		return nil
	}

	metrics.RecordWebhook(string(mapped))
	switch mapped {
	case StatusPaid:
		s.notifier.NotifyUser(ctx, t.UserID, notification.KindPaymentSuccess,
			"Payment received",
			fmt.Sprintf("Your payment of Rp%d for order %s has been confirmed.", t.TotalPrice, t.OrderID))
	case StatusFailed, StatusExpired:
		s.notifier.NotifyUser(ctx, t.UserID, notification.KindPaymentFailed,
			"Payment unsuccessful",
			fmt.Sprintf("Your payment for order %s was not completed (%s).", t.OrderID, payload.TransactionStatus))
	}

	return nil
}
