package catalog

import "context"

type Repository interface {
	ListTrips(ctx context.Context) ([]Trip, error)
	GetTripByID(ctx context.Context, id int) (*Trip, error)
	ListTravels(ctx context.Context) ([]Travel, error)
	GetTravelByID(ctx context.Context, id int) (*Travel, error)
	Resolve(ctx context.Context, ref Ref) (*Snapshot, error)
}

// Resolver is the slice of the repository the booking engines depend on.
type Resolver interface {
	Resolve(ctx context.Context, ref Ref) (*Snapshot, error)
}
