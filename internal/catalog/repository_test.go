package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func tripRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "destination", "description", "price", "duration_days", "is_active", "created_at"}).
		AddRow(7, "Bromo Sunrise", "Bromo", "3 days of sunrise hiking", int64(500000), 3, true, time.Now())
}

func TestRepository_Resolve(t *testing.T) {
	t.Run("trip ref resolves against trips", func(t *testing.T) {
		repo, mock, close := setupMock(t)
		defer close()

		mock.ExpectQuery(`(?s)SELECT .+ FROM trips`).
			WithArgs(7).
			WillReturnRows(tripRow())

		snap, err := repo.Resolve(context.Background(), Ref{Kind: KindTrip, ID: 7})
		require.NoError(t, err)
		require.Equal(t, "Bromo Sunrise", snap.Name)
		require.Equal(t, int64(500000), snap.UnitPrice)
		require.True(t, snap.Active)
	})

	t.Run("travel ref resolves against travels", func(t *testing.T) {
		repo, mock, close := setupMock(t)
		defer close()

		mock.ExpectQuery(`(?s)SELECT .+ FROM travels`).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "origin", "destination", "price", "seats", "is_active", "created_at"}).
				AddRow(3, "Jakarta - Bandung", "Jakarta", "Bandung", int64(150000), 10, false, time.Now()))

		snap, err := repo.Resolve(context.Background(), Ref{Kind: KindTravel, ID: 3})
		require.NoError(t, err)
		require.Equal(t, "Jakarta - Bandung", snap.Name)
		require.False(t, snap.Active)
	})

	t.Run("missing item maps to not found", func(t *testing.T) {
		repo, mock, close := setupMock(t)
		defer close()

		mock.ExpectQuery(`(?s)SELECT .+ FROM trips`).
			WithArgs(999).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.Resolve(context.Background(), Ref{Kind: KindTrip, ID: 999})
		require.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("unknown kind is rejected without a query", func(t *testing.T) {
		repo, mock, close := setupMock(t)
		defer close()

		_, err := repo.Resolve(context.Background(), Ref{Kind: "flight", ID: 1})
		require.ErrorIs(t, err, ErrUnknownKind)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("trip")
	require.NoError(t, err)
	require.Equal(t, KindTrip, kind)

	kind, err = ParseKind("travel")
	require.NoError(t, err)
	require.Equal(t, KindTravel, kind)

	_, err = ParseKind("cruise")
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestKind_MaxPartySize(t *testing.T) {
	require.Equal(t, 50, KindTrip.MaxPartySize())
	require.Equal(t, 10, KindTravel.MaxPartySize())
}

func TestRepository_ListTrips(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(`(?s)SELECT .+ FROM trips`).
		WillReturnRows(tripRow())

	trips, err := repo.ListTrips(context.Background())
	require.NoError(t, err)
	require.Len(t, trips, 1)
	require.Equal(t, "Bromo Sunrise", trips[0].Name)
}
