package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/apperr"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock collaborators
type MockBookingRepo struct{ mock.Mock }
type MockResolver struct{ mock.Mock }
type MockStorage struct{ mock.Mock }
type MockEmitter struct{ mock.Mock }

func (m *MockBookingRepo) Create(ctx context.Context, b *Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil && b.BookingCode == "" {
		b.BookingCode = "BKT-250901-ABC123"
	}
	return args.Error(0)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepo) ListByUser(ctx context.Context, userID int) ([]Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepo) List(ctx context.Context, status Status) ([]Booking, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id string, from, to Status) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepo) MarkRejected(ctx context.Context, id, reason string) (bool, error) {
	args := m.Called(ctx, id, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepo) AddProof(ctx context.Context, p *PaymentProof) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockBookingRepo) ProofsByBooking(ctx context.Context, bookingID string) ([]PaymentProof, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PaymentProof), args.Error(1)
}

func (m *MockBookingRepo) ListExpiredIDs(ctx context.Context, now time.Time) ([]string, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingRepo) Statistics(ctx context.Context) (*Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Statistics), args.Error(1)
}

func (m *MockResolver) Resolve(ctx context.Context, ref catalog.Ref) (*catalog.Snapshot, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Snapshot), args.Error(1)
}

func (m *MockStorage) Put(ctx context.Context, data []byte, suggestedName string) (string, error) {
	args := m.Called(ctx, data, suggestedName)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

func (m *MockEmitter) NotifyAdmins(ctx context.Context, kind, title, message string) {
	m.Called(ctx, kind, title, message)
}

func (m *MockEmitter) NotifyUser(ctx context.Context, userID int, kind, title, message string) {
	m.Called(ctx, userID, kind, title, message)
}

func newTestService(repo *MockBookingRepo, resolver *MockResolver, store *MockStorage, emitter *MockEmitter) *service {
	return NewService(repo, resolver, store, emitter, 24*time.Hour, 5*time.Second).(*service)
}

func TestService_Create(t *testing.T) {
	tomorrow := time.Now().Add(48 * time.Hour).Format("2006-01-02")
	yesterday := time.Now().Add(-48 * time.Hour).Format("2006-01-02")

	tests := []struct {
		name        string
		req         CreateRequest
		setupMocks  func(*MockBookingRepo, *MockResolver, *MockEmitter)
		expectError bool
		errorKind   apperr.Kind
		totalPrice  int64
	}{
		{
			name: "successful trip booking freezes price",
			req: CreateRequest{
				CatalogType:   "trip",
				CatalogID:     7,
				CustomerName:  "Budi Santoso",
				Phone:         "+628123456789",
				DepartureDate: tomorrow,
				PartySize:     2,
			},
			setupMocks: func(br *MockBookingRepo, cr *MockResolver, em *MockEmitter) {
				cr.On("Resolve", mock.Anything, catalog.Ref{Kind: catalog.KindTrip, ID: 7}).Return(&catalog.Snapshot{
					Name:      "Bromo Sunrise",
					UnitPrice: 500000,
					Active:    true,
				}, nil)
				br.On("Create", mock.Anything, mock.Anything).Return(nil)
				em.On("NotifyAdmins", mock.Anything, "order_created", mock.Anything, mock.Anything).Return()
			},
			totalPrice: 1000000,
		},
		{
			name: "inactive catalog item",
			req: CreateRequest{
				CatalogType:   "trip",
				CatalogID:     7,
				CustomerName:  "Budi Santoso",
				Phone:         "+628123456789",
				DepartureDate: tomorrow,
				PartySize:     2,
			},
			setupMocks: func(br *MockBookingRepo, cr *MockResolver, em *MockEmitter) {
				cr.On("Resolve", mock.Anything, mock.Anything).Return(&catalog.Snapshot{
					Name:      "Bromo Sunrise",
					UnitPrice: 500000,
					Active:    false,
				}, nil)
			},
			expectError: true,
			errorKind:   apperr.KindNotFound,
		},
		{
			name: "unknown catalog item",
			req: CreateRequest{
				CatalogType:   "trip",
				CatalogID:     999,
				CustomerName:  "Budi Santoso",
				Phone:         "+628123456789",
				DepartureDate: tomorrow,
				PartySize:     1,
			},
			setupMocks: func(br *MockBookingRepo, cr *MockResolver, em *MockEmitter) {
				cr.On("Resolve", mock.Anything, mock.Anything).Return(nil, catalog.ErrItemNotFound)
			},
			expectError: true,
			errorKind:   apperr.KindNotFound,
		},
		{
			name: "party size over travel limit",
			req: CreateRequest{
				CatalogType:   "travel",
				CatalogID:     3,
				CustomerName:  "Budi Santoso",
				Phone:         "+628123456789",
				DepartureDate: tomorrow,
				PartySize:     11,
			},
			setupMocks: func(br *MockBookingRepo, cr *MockResolver, em *MockEmitter) {
				cr.On("Resolve", mock.Anything, mock.Anything).Return(&catalog.Snapshot{
					Name:      "Jakarta - Bandung",
					UnitPrice: 150000,
					Active:    true,
				}, nil)
			},
			expectError: true,
			errorKind:   apperr.KindValidation,
		},
		{
			name: "departure in the past",
			req: CreateRequest{
				CatalogType:   "trip",
				CatalogID:     7,
				CustomerName:  "Budi Santoso",
				Phone:         "+628123456789",
				DepartureDate: yesterday,
				PartySize:     2,
			},
			setupMocks: func(br *MockBookingRepo, cr *MockResolver, em *MockEmitter) {
				cr.On("Resolve", mock.Anything, mock.Anything).Return(&catalog.Snapshot{
					Name:      "Bromo Sunrise",
					UnitPrice: 500000,
					Active:    true,
				}, nil)
			},
			expectError: true,
			errorKind:   apperr.KindValidation,
		},
		{
			name: "malformed departure date",
			req: CreateRequest{
				CatalogType:   "trip",
				CatalogID:     7,
				CustomerName:  "Budi Santoso",
				Phone:         "+628123456789",
				DepartureDate: "31-12-2026",
				PartySize:     2,
			},
			setupMocks: func(br *MockBookingRepo, cr *MockResolver, em *MockEmitter) {
				cr.On("Resolve", mock.Anything, mock.Anything).Return(&catalog.Snapshot{
					Name:      "Bromo Sunrise",
					UnitPrice: 500000,
					Active:    true,
				}, nil)
			},
			expectError: true,
			errorKind:   apperr.KindValidation,
		},
		{
			name: "unknown catalog type",
			req: CreateRequest{
				CatalogType:   "flight",
				CatalogID:     1,
				CustomerName:  "Budi Santoso",
				Phone:         "+628123456789",
				DepartureDate: tomorrow,
				PartySize:     1,
			},
			setupMocks:  func(br *MockBookingRepo, cr *MockResolver, em *MockEmitter) {},
			expectError: true,
			errorKind:   apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := new(MockBookingRepo)
			cr := new(MockResolver)
			st := new(MockStorage)
			em := new(MockEmitter)
			tt.setupMocks(br, cr, em)

			svc := newTestService(br, cr, st, em)
			b, snap, err := svc.Create(context.Background(), 1, tt.req)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, tt.errorKind, apperr.KindOf(err))
				assert.Nil(t, b)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, b)
				assert.NotNil(t, snap)
				assert.Equal(t, tt.totalPrice, b.TotalPrice)
				assert.Equal(t, StatusAwaitingPayment, b.Status)
				assert.NotEmpty(t, b.ID)
				assert.True(t, b.ExpiredAt.After(time.Now()))
				em.AssertCalled(t, "NotifyAdmins", mock.Anything, "order_created", mock.Anything, mock.Anything)
			}
			br.AssertExpectations(t)
		})
	}
}

func TestService_UploadProof(t *testing.T) {
	image := []byte("fake-image-bytes")

	active := func() *Booking {
		return &Booking{
			ID:           "b-1",
			BookingCode:  "BKT-250901-ABC123",
			UserID:       1,
			CatalogType:  catalog.KindTrip,
			CatalogID:    7,
			CustomerName: "Budi Santoso",
			Status:       StatusAwaitingPayment,
			ExpiredAt:    time.Now().Add(time.Hour),
		}
	}

	t.Run("successful upload moves booking to awaiting_validation", func(t *testing.T) {
		br := new(MockBookingRepo)
		cr := new(MockResolver)
		st := new(MockStorage)
		em := new(MockEmitter)

		br.On("GetByID", mock.Anything, "b-1").Return(active(), nil)
		st.On("Put", mock.Anything, image, "proof.jpg").Return("/uploads/123.jpg", nil)
		br.On("UpdateStatus", mock.Anything, "b-1", StatusAwaitingPayment, StatusAwaitingValidation).Return(true, nil)
		br.On("AddProof", mock.Anything, mock.Anything).Return(nil)
		em.On("NotifyAdmins", mock.Anything, "proof_uploaded", mock.Anything, mock.Anything).Return()

		svc := newTestService(br, cr, st, em)
		proof, err := svc.UploadProof(context.Background(), 1, "b-1", image, "proof.jpg")

		assert.NoError(t, err)
		assert.Equal(t, "/uploads/123.jpg", proof.ImageURL)
		br.AssertExpectations(t)
		em.AssertExpectations(t)
	})

	t.Run("rejects upload from non-owner", func(t *testing.T) {
		br := new(MockBookingRepo)
		br.On("GetByID", mock.Anything, "b-1").Return(active(), nil)

		svc := newTestService(br, new(MockResolver), new(MockStorage), new(MockEmitter))
		_, err := svc.UploadProof(context.Background(), 99, "b-1", image, "proof.jpg")

		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("rejects upload when booking is not awaiting payment", func(t *testing.T) {
		b := active()
		b.Status = StatusPaid

		br := new(MockBookingRepo)
		br.On("GetByID", mock.Anything, "b-1").Return(b, nil)

		svc := newTestService(br, new(MockResolver), new(MockStorage), new(MockEmitter))
		_, err := svc.UploadProof(context.Background(), 1, "b-1", image, "proof.jpg")

		assert.ErrorIs(t, err, ErrNotAwaitingProof)
	})

	t.Run("expires stale booking on upload", func(t *testing.T) {
		b := active()
		b.ExpiredAt = time.Now().Add(-time.Minute)

		br := new(MockBookingRepo)
		st := new(MockStorage)
		br.On("GetByID", mock.Anything, "b-1").Return(b, nil)
		br.On("UpdateStatus", mock.Anything, "b-1", StatusAwaitingPayment, StatusExpired).Return(true, nil)

		svc := newTestService(br, new(MockResolver), st, new(MockEmitter))
		_, err := svc.UploadProof(context.Background(), 1, "b-1", image, "proof.jpg")

		assert.ErrorIs(t, err, ErrBookingExpired)
		st.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
		br.AssertExpectations(t)
	})

	t.Run("cleans up blob when sweeper wins the race", func(t *testing.T) {
		expired := active()
		expired.Status = StatusExpired

		br := new(MockBookingRepo)
		st := new(MockStorage)
		br.On("GetByID", mock.Anything, "b-1").Return(active(), nil).Once()
		st.On("Put", mock.Anything, image, "proof.jpg").Return("/uploads/123.jpg", nil)
		br.On("UpdateStatus", mock.Anything, "b-1", StatusAwaitingPayment, StatusAwaitingValidation).Return(false, nil)
		st.On("Delete", mock.Anything, "/uploads/123.jpg").Return(nil)
		br.On("GetByID", mock.Anything, "b-1").Return(expired, nil).Once()

		svc := newTestService(br, new(MockResolver), st, new(MockEmitter))
		_, err := svc.UploadProof(context.Background(), 1, "b-1", image, "proof.jpg")

		assert.ErrorIs(t, err, ErrBookingExpired)
		st.AssertCalled(t, "Delete", mock.Anything, "/uploads/123.jpg")
		br.AssertNotCalled(t, "AddProof", mock.Anything, mock.Anything)
	})

	t.Run("storage failure surfaces as upstream error", func(t *testing.T) {
		br := new(MockBookingRepo)
		st := new(MockStorage)
		br.On("GetByID", mock.Anything, "b-1").Return(active(), nil)
		st.On("Put", mock.Anything, image, "proof.jpg").Return("", errors.New("disk full"))

		svc := newTestService(br, new(MockResolver), st, new(MockEmitter))
		_, err := svc.UploadProof(context.Background(), 1, "b-1", image, "proof.jpg")

		assert.Error(t, err)
		assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
		br.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Approve(t *testing.T) {
	pending := &Booking{
		ID:          "b-2",
		BookingCode: "BKT-250901-DEF456",
		UserID:      5,
		CatalogType: catalog.KindTrip,
		CatalogID:   7,
		TotalPrice:  1000000,
		Status:      StatusAwaitingValidation,
	}

	t.Run("approval notifies the customer", func(t *testing.T) {
		br := new(MockBookingRepo)
		cr := new(MockResolver)
		em := new(MockEmitter)

		br.On("GetByID", mock.Anything, "b-2").Return(pending, nil)
		br.On("UpdateStatus", mock.Anything, "b-2", StatusAwaitingValidation, StatusPaid).Return(true, nil)
		cr.On("Resolve", mock.Anything, mock.Anything).Return(&catalog.Snapshot{Name: "Bromo Sunrise"}, nil)
		em.On("NotifyUser", mock.Anything, 5, "payment_approved", mock.Anything, mock.Anything).Return()

		svc := newTestService(br, cr, new(MockStorage), em)
		b, err := svc.Approve(context.Background(), "b-2")

		assert.NoError(t, err)
		assert.Equal(t, StatusPaid, b.Status)
		em.AssertExpectations(t)
	})

	t.Run("approval fails when booking already moved", func(t *testing.T) {
		br := new(MockBookingRepo)
		br.On("GetByID", mock.Anything, "b-2").Return(pending, nil)
		br.On("UpdateStatus", mock.Anything, "b-2", StatusAwaitingValidation, StatusPaid).Return(false, nil)

		svc := newTestService(br, new(MockResolver), new(MockStorage), new(MockEmitter))
		_, err := svc.Approve(context.Background(), "b-2")

		assert.ErrorIs(t, err, ErrNotValidatable)
	})
}

func TestService_Reject(t *testing.T) {
	pending := &Booking{
		ID:          "b-3",
		BookingCode: "BKT-250901-GHI789",
		UserID:      5,
		CatalogType: catalog.KindTravel,
		CatalogID:   3,
		TotalPrice:  300000,
		Status:      StatusAwaitingValidation,
	}

	t.Run("rejection records reason and notifies the customer", func(t *testing.T) {
		br := new(MockBookingRepo)
		cr := new(MockResolver)
		em := new(MockEmitter)

		br.On("GetByID", mock.Anything, "b-3").Return(pending, nil)
		br.On("MarkRejected", mock.Anything, "b-3", "proof unreadable").Return(true, nil)
		cr.On("Resolve", mock.Anything, mock.Anything).Return(&catalog.Snapshot{Name: "Jakarta - Bandung"}, nil)
		em.On("NotifyUser", mock.Anything, 5, "payment_rejected", mock.Anything, mock.Anything).Return()

		svc := newTestService(br, cr, new(MockStorage), em)
		b, err := svc.Reject(context.Background(), "b-3", "proof unreadable")

		assert.NoError(t, err)
		assert.Equal(t, StatusRejected, b.Status)
		assert.NotNil(t, b.RejectionReason)
		assert.Equal(t, "proof unreadable", *b.RejectionReason)
		em.AssertExpectations(t)
	})

	t.Run("rejection fails on a paid booking", func(t *testing.T) {
		paid := &Booking{ID: "b-3", UserID: 5, Status: StatusPaid}

		br := new(MockBookingRepo)
		br.On("GetByID", mock.Anything, "b-3").Return(paid, nil)
		br.On("MarkRejected", mock.Anything, "b-3", "too late").Return(false, nil)

		svc := newTestService(br, new(MockResolver), new(MockStorage), new(MockEmitter))
		_, err := svc.Reject(context.Background(), "b-3", "too late")

		assert.ErrorIs(t, err, ErrNotValidatable)
	})
}

func TestService_Detail(t *testing.T) {
	b := &Booking{
		ID:          "b-4",
		UserID:      5,
		CatalogType: catalog.KindTrip,
		CatalogID:   7,
		Status:      StatusAwaitingValidation,
	}

	t.Run("owner sees booking with proofs and catalog name", func(t *testing.T) {
		br := new(MockBookingRepo)
		cr := new(MockResolver)

		br.On("GetByID", mock.Anything, "b-4").Return(b, nil)
		br.On("ProofsByBooking", mock.Anything, "b-4").Return([]PaymentProof{{ID: 1, BookingID: "b-4"}}, nil)
		cr.On("Resolve", mock.Anything, mock.Anything).Return(&catalog.Snapshot{Name: "Bromo Sunrise"}, nil)

		svc := newTestService(br, cr, new(MockStorage), new(MockEmitter))
		detail, err := svc.Detail(context.Background(), 5, "b-4")

		assert.NoError(t, err)
		assert.Len(t, detail.Proofs, 1)
		assert.Equal(t, "Bromo Sunrise", detail.CatalogName)
	})

	t.Run("other users are rejected", func(t *testing.T) {
		br := new(MockBookingRepo)
		cr := new(MockResolver)

		br.On("GetByID", mock.Anything, "b-4").Return(b, nil)
		br.On("ProofsByBooking", mock.Anything, "b-4").Return([]PaymentProof{}, nil)
		cr.On("Resolve", mock.Anything, mock.Anything).Return(&catalog.Snapshot{Name: "Bromo Sunrise"}, nil)

		svc := newTestService(br, cr, new(MockStorage), new(MockEmitter))
		_, err := svc.Detail(context.Background(), 99, "b-4")

		assert.ErrorIs(t, err, ErrNotOwner)
	})
}
