package repository

import (
	"context"

	"rides/internal/domain"
)

// RideRepository defines the persistence operations for rides.
//
// Update is a compare-and-swap: it applies only while the stored status
// still equals expected, so two racing transitions on the same ride can
// never both succeed. Implementations apply the whole record or nothing.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// ListByStatus retrieves rides in the given status, oldest first.
	ListByStatus(ctx context.Context, status domain.RideStatus) ([]*domain.Ride, error)

	// ListByRider retrieves a rider's rides, newest first.
	ListByRider(ctx context.Context, riderID string) ([]*domain.Ride, error)

	// ListByDriver retrieves a driver's rides, newest first.
	ListByDriver(ctx context.Context, driverID string) ([]*domain.Ride, error)

	// ListAll retrieves all rides, newest first.
	ListAll(ctx context.Context) ([]*domain.Ride, error)

	// Update persists ride if its stored status still equals expected.
	// Returns ErrStaleStatus when another writer got there first and
	// ErrNotFound when the ride does not exist.
	Update(ctx context.Context, ride *domain.Ride, expected domain.RideStatus) error

	// Delete removes a ride. Administrative use only; the ride lifecycle
	// never deletes.
	Delete(ctx context.Context, id string) error
}
