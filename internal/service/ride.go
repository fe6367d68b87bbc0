package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rides/internal/domain"
	"rides/internal/fare"
	"rides/internal/geocode"
	"rides/internal/repository"
)

// RideService enforces the ride state machine. It is stateless between
// calls: every mutation re-fetches the current ride and commits through the
// repository's conditional update, so a transition that lost a race fails
// instead of overwriting.
type RideService struct {
	rideRepo repository.RideRepository
	geocoder geocode.Geocoder
	calc     *fare.Calculator
}

// NewRideService creates a new RideService.
func NewRideService(rideRepo repository.RideRepository, geocoder geocode.Geocoder, calc *fare.Calculator) *RideService {
	return &RideService{
		rideRepo: rideRepo,
		geocoder: geocoder,
		calc:     calc,
	}
}

// CreateRideRequest contains the parameters for requesting a ride.
type CreateRideRequest struct {
	RiderID        string
	PickupAddress  string
	DropoffAddress string
}

// CreateRide geocodes both endpoints and persists a new ride in the
// requested state. If either address fails to resolve, nothing is persisted.
func (s *RideService) CreateRide(ctx context.Context, req CreateRideRequest) (*domain.Ride, error) {
	if req.RiderID == "" {
		return nil, ErrInvalidRiderID
	}
	if req.PickupAddress == "" || req.DropoffAddress == "" {
		return nil, ErrEmptyAddress
	}

	pickup, err := s.resolve(ctx, req.PickupAddress)
	if err != nil {
		return nil, err
	}

	dropoff, err := s.resolve(ctx, req.DropoffAddress)
	if err != nil {
		return nil, err
	}

	ride := &domain.Ride{
		ID:          uuid.New().String(),
		RiderID:     req.RiderID,
		Pickup:      pickup,
		Dropoff:     dropoff,
		Status:      domain.RideStatusRequested,
		Fare:        0,
		RequestedAt: time.Now(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	return ride, nil
}

// resolve geocodes one address, translating resolution failures into the
// user-facing invalid-location error. Provider outages pass through as
// retryable.
func (s *RideService) resolve(ctx context.Context, address string) (domain.Location, error) {
	loc, err := s.geocoder.Resolve(ctx, address)
	if err != nil {
		if errors.Is(err, geocode.ErrUnavailable) {
			return domain.Location{}, err
		}
		return domain.Location{}, fmt.Errorf("%w: %q", ErrInvalidLocation, address)
	}
	if !loc.Valid() {
		return domain.Location{}, fmt.Errorf("%w: %q", ErrInvalidLocation, address)
	}
	return loc, nil
}

// AcceptRide assigns a driver to a requested ride, computing the fare from
// the geocoded endpoints. The assignment commits only if the ride is still
// requested; a concurrent acceptance loses with ErrInvalidTransition.
func (s *RideService) AcceptRide(ctx context.Context, rideID, driverID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.Status != domain.RideStatusRequested {
		if ride.Status.IsTerminal() {
			return nil, fmt.Errorf("%w: ride is %s", ErrInvalidTransition, ride.Status)
		}
		return nil, fmt.Errorf("%w: ride already accepted", ErrInvalidTransition)
	}

	distance := fare.DistanceMeters(ride.Pickup, ride.Dropoff)

	ride.DriverID = driverID
	ride.Status = domain.RideStatusAccepted
	ride.Fare = s.calc.Fare(distance)

	if err := s.rideRepo.Update(ctx, ride, domain.RideStatusRequested); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, fmt.Errorf("%w: ride already accepted", ErrInvalidTransition)
		}
		return nil, err
	}

	return ride, nil
}

// UpdateStatusRequest contains the parameters for advancing a ride.
type UpdateStatusRequest struct {
	RideID    string
	Actor     domain.Actor
	NewStatus domain.RideStatus
	Reason    string
}

// UpdateStatus advances a ride through the state machine. The assigned
// driver may advance or cancel; the requesting rider may cancel while the
// ride is requested or accepted. Completion stamps CompletedAt, cancellation
// stamps CancelledAt; either commits atomically with the status or not at all.
func (s *RideService) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*domain.Ride, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if !req.NewStatus.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.NewStatus)
	}
	if req.NewStatus == domain.RideStatusRequested || req.NewStatus == domain.RideStatusAccepted {
		// requested is the initial state; accepted is only reachable through
		// AcceptRide, which sets driver and fare with it.
		return nil, fmt.Errorf("%w: cannot move a ride to %q", ErrInvalidStatus, req.NewStatus)
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	if err := authorizeStatusChange(ride, req.Actor, req.NewStatus); err != nil {
		return nil, err
	}

	if !ride.Status.CanTransitionTo(req.NewStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ride.Status, req.NewStatus)
	}

	expected := ride.Status
	ride.Status = req.NewStatus

	switch req.NewStatus {
	case domain.RideStatusCompleted:
		ride.CompletedAt = time.Now()
	case domain.RideStatusCancelled:
		ride.CancelledAt = time.Now()
		ride.CancelReason = req.Reason
	}

	if err := s.rideRepo.Update(ctx, ride, expected); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, fmt.Errorf("%w: ride moved past %s", ErrInvalidTransition, expected)
		}
		return nil, err
	}

	return ride, nil
}

// authorizeStatusChange decides who may move the ride. The assigned driver
// owns progression; the rider may only cancel, and only before the trip is
// underway. Cancelling an in_progress ride is reserved to the driver.
func authorizeStatusChange(ride *domain.Ride, actor domain.Actor, next domain.RideStatus) error {
	if actor.ID != "" && actor.ID == ride.DriverID {
		return nil
	}

	if actor.Role == domain.RoleRider && actor.ID == ride.RiderID && next == domain.RideStatusCancelled {
		if ride.Status == domain.RideStatusRequested || ride.Status == domain.RideStatusAccepted {
			return nil
		}
	}

	return ErrForbidden
}

// GetRide retrieves a ride by ID.
func (s *RideService) GetRide(ctx context.Context, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	return s.rideRepo.GetByID(ctx, rideID)
}

// ListAvailableRides returns all requested rides, oldest first, so drivers
// browsing the queue see them in FIFO order.
func (s *RideService) ListAvailableRides(ctx context.Context) ([]*domain.Ride, error) {
	return s.rideRepo.ListByStatus(ctx, domain.RideStatusRequested)
}

// ListRidesForRider returns a rider's rides, newest first.
func (s *RideService) ListRidesForRider(ctx context.Context, riderID string) ([]*domain.Ride, error) {
	if riderID == "" {
		return nil, ErrInvalidRiderID
	}
	return s.rideRepo.ListByRider(ctx, riderID)
}

// ListRidesForDriver returns a driver's rides, newest first.
func (s *RideService) ListRidesForDriver(ctx context.Context, driverID string) ([]*domain.Ride, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	return s.rideRepo.ListByDriver(ctx, driverID)
}

// ListAllRides returns every ride, newest first. Admin use.
func (s *RideService) ListAllRides(ctx context.Context) ([]*domain.Ride, error) {
	return s.rideRepo.ListAll(ctx)
}

// DeleteRide removes a ride record. Administrative operation, outside the
// normal lifecycle; the handler restricts it to admins.
func (s *RideService) DeleteRide(ctx context.Context, rideID string) error {
	if rideID == "" {
		return ErrInvalidRideID
	}
	return s.rideRepo.Delete(ctx, rideID)
}
