package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/apperr"
)

var ErrItemNotFound = apperr.NotFound("catalog item not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListTrips(ctx context.Context) ([]Trip, error) {
	query := `
		SELECT id, name, destination, description, price, duration_days, is_active, created_at
		FROM trips
		WHERE is_active = true
		ORDER BY created_at DESC
	`

	var trips []Trip
	if err := r.db.SelectContext(ctx, &trips, query); err != nil {
		return nil, err
	}

	return trips, nil
}

func (r *repository) GetTripByID(ctx context.Context, id int) (*Trip, error) {
	query := `
		SELECT id, name, destination, description, price, duration_days, is_active, created_at
		FROM trips
		WHERE id = $1
	`

	var trip Trip
	if err := r.db.GetContext(ctx, &trip, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return &trip, nil
}

func (r *repository) ListTravels(ctx context.Context) ([]Travel, error) {
	query := `
		SELECT id, name, origin, destination, price, seats, is_active, created_at
		FROM travels
		WHERE is_active = true
		ORDER BY created_at DESC
	`

	var travels []Travel
	if err := r.db.SelectContext(ctx, &travels, query); err != nil {
		return nil, err
	}

	return travels, nil
}

func (r *repository) GetTravelByID(ctx context.Context, id int) (*Travel, error) {
	query := `
		SELECT id, name, origin, destination, price, seats, is_active, created_at
		FROM travels
		WHERE id = $1
	`

	var travel Travel
	if err := r.db.GetContext(ctx, &travel, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	return &travel, nil
}

// Resolve is the single point where the catalog tag is branched on.
func (r *repository) Resolve(ctx context.Context, ref Ref) (*Snapshot, error) {
	switch ref.Kind {
	case KindTrip:
		trip, err := r.GetTripByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return &Snapshot{Name: trip.Name, UnitPrice: trip.Price, Active: trip.IsActive}, nil
	case KindTravel:
		travel, err := r.GetTravelByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return &Snapshot{Name: travel.Name, UnitPrice: travel.Price, Active: travel.IsActive}, nil
	}
	return nil, ErrUnknownKind
}
