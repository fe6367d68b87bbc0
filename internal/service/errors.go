package service

import "errors"

var (
	// ErrInvalidTransition is returned when a status change violates the
	// ride state machine, including a transition lost to a concurrent writer.
	ErrInvalidTransition = errors.New("ride status transition not allowed")

	// ErrForbidden is returned when the acting identity is not authorized to
	// mutate the ride.
	ErrForbidden = errors.New("actor not authorized for this ride")

	// ErrInvalidLocation is returned when a pickup or dropoff address cannot
	// be resolved to coordinates.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidStatus is returned when the requested status is not a known
	// ride status, or is one that cannot be requested directly.
	ErrInvalidStatus = errors.New("invalid ride status")

	// ErrInvalidRideID is returned when ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidRiderID is returned when rider ID is empty.
	ErrInvalidRiderID = errors.New("invalid rider id")

	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrEmptyAddress is returned when a pickup or dropoff address is empty.
	ErrEmptyAddress = errors.New("pickup and dropoff addresses are required")
)
