package tests

import (
	"context"
	"sync"
	"sync/atomic"

	"rides/internal/domain"
	"rides/internal/geocode"
	"rides/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK GEOCODER
// ──────────────────────────────────────────────

// MockGeocoder is a mock implementation of geocode.Geocoder backed by a
// fixed address table.
type MockGeocoder struct {
	mu        sync.RWMutex
	locations map[string]domain.Location

	// Counters for verification
	ResolveCallCount int32

	// Error injection
	ResolveError error
}

// NewMockGeocoder creates a mock geocoder with no known addresses.
func NewMockGeocoder() *MockGeocoder {
	return &MockGeocoder{
		locations: make(map[string]domain.Location),
	}
}

// AddAddress registers an address and the coordinates it resolves to.
func (m *MockGeocoder) AddAddress(address string, lat, lng float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[address] = domain.Location{Address: address, Lat: lat, Lng: lng}
}

func (m *MockGeocoder) Resolve(ctx context.Context, address string) (domain.Location, error) {
	atomic.AddInt32(&m.ResolveCallCount, 1)
	if m.ResolveError != nil {
		return domain.Location{}, m.ResolveError
	}
	if address == "" {
		return domain.Location{}, geocode.ErrEmptyAddress
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.locations[address]
	if !ok {
		return domain.Location{}, geocode.ErrNoResult
	}
	return loc, nil
}

// ──────────────────────────────────────────────
// FAILING RIDE REPOSITORY
// ──────────────────────────────────────────────

// FailingRideRepository wraps a real repository with per-method error
// injection, for exercising outage paths. A nil injected error delegates
// to the wrapped repository.
type FailingRideRepository struct {
	repository.RideRepository

	CreateError error
	GetError    error
	UpdateError error
	ListError   error
}

// NewFailingRideRepository wraps repo.
func NewFailingRideRepository(repo repository.RideRepository) *FailingRideRepository {
	return &FailingRideRepository{RideRepository: repo}
}

func (f *FailingRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	if f.CreateError != nil {
		return f.CreateError
	}
	return f.RideRepository.Create(ctx, ride)
}

func (f *FailingRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	if f.GetError != nil {
		return nil, f.GetError
	}
	return f.RideRepository.GetByID(ctx, id)
}

func (f *FailingRideRepository) Update(ctx context.Context, ride *domain.Ride, expected domain.RideStatus) error {
	if f.UpdateError != nil {
		return f.UpdateError
	}
	return f.RideRepository.Update(ctx, ride, expected)
}

func (f *FailingRideRepository) ListByStatus(ctx context.Context, status domain.RideStatus) ([]*domain.Ride, error) {
	if f.ListError != nil {
		return nil, f.ListError
	}
	return f.RideRepository.ListByStatus(ctx, status)
}
