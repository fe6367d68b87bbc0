package memory

import (
	"context"
	"sort"
	"sync"

	"rides/internal/domain"
	"rides/internal/repository"
)

// RideRepository is an in-memory implementation of repository.RideRepository.
// It is the reference implementation for single-process deployments and
// tests; the conditional Update is atomic under the repository mutex.
type RideRepository struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride
}

// Ensure the interface is satisfied.
var _ repository.RideRepository = (*RideRepository)(nil)

// NewRideRepository creates an empty in-memory ride repository.
func NewRideRepository() *RideRepository {
	return &RideRepository{
		rides: make(map[string]*domain.Ride),
	}
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *ride
	r.rides[ride.ID] = &stored
	return nil
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ride, ok := r.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	// Return a copy so callers cannot mutate stored state.
	out := *ride
	return &out, nil
}

// ListByStatus retrieves rides in the given status, oldest first.
func (r *RideRepository) ListByStatus(ctx context.Context, status domain.RideStatus) ([]*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rides []*domain.Ride
	for _, ride := range r.rides {
		if ride.Status == status {
			out := *ride
			rides = append(rides, &out)
		}
	}

	sort.Slice(rides, func(i, j int) bool {
		return rides[i].RequestedAt.Before(rides[j].RequestedAt)
	})
	return rides, nil
}

// ListByRider retrieves a rider's rides, newest first.
func (r *RideRepository) ListByRider(ctx context.Context, riderID string) ([]*domain.Ride, error) {
	return r.listFiltered(func(ride *domain.Ride) bool {
		return ride.RiderID == riderID
	})
}

// ListByDriver retrieves a driver's rides, newest first.
func (r *RideRepository) ListByDriver(ctx context.Context, driverID string) ([]*domain.Ride, error) {
	return r.listFiltered(func(ride *domain.Ride) bool {
		return ride.DriverID == driverID
	})
}

// ListAll retrieves all rides, newest first.
func (r *RideRepository) ListAll(ctx context.Context) ([]*domain.Ride, error) {
	return r.listFiltered(func(*domain.Ride) bool { return true })
}

func (r *RideRepository) listFiltered(keep func(*domain.Ride) bool) ([]*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rides []*domain.Ride
	for _, ride := range r.rides {
		if keep(ride) {
			out := *ride
			rides = append(rides, &out)
		}
	}

	sort.Slice(rides, func(i, j int) bool {
		return rides[i].RequestedAt.After(rides[j].RequestedAt)
	})
	return rides, nil
}

// Update persists ride if its stored status still equals expected.
func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride, expected domain.RideStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.rides[ride.ID]
	if !ok {
		return repository.ErrNotFound
	}

	if stored.Status != expected {
		return repository.ErrStaleStatus
	}

	next := *ride
	r.rides[ride.ID] = &next
	return nil
}

// Delete removes a ride.
func (r *RideRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rides[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rides, id)
	return nil
}
