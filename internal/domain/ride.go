package domain

import (
	"math"
	"time"
)

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusRequested  RideStatus = "requested"
	RideStatusAccepted   RideStatus = "accepted"
	RideStatusInProgress RideStatus = "in_progress"
	RideStatusCompleted  RideStatus = "completed"
	RideStatusCancelled  RideStatus = "cancelled"
)

// allowedTransitions is the ride state machine. A status missing from the
// map is terminal.
var allowedTransitions = map[RideStatus][]RideStatus{
	RideStatusRequested:  {RideStatusAccepted, RideStatusCancelled},
	RideStatusAccepted:   {RideStatusInProgress, RideStatusCancelled},
	RideStatusInProgress: {RideStatusCompleted, RideStatusCancelled},
}

// IsValid reports whether s is one of the canonical ride statuses.
func (s RideStatus) IsValid() bool {
	switch s {
	case RideStatusRequested, RideStatusAccepted, RideStatusInProgress,
		RideStatusCompleted, RideStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed out of s.
func (s RideStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// CanTransitionTo reports whether the state machine permits s -> next.
func (s RideStatus) CanTransitionTo(next RideStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Location is a geocoded point: the free-text address a client submitted
// plus the coordinates it resolved to.
type Location struct {
	Address string
	Lat     float64
	Lng     float64
}

// Valid reports whether the location carries finite coordinates within range.
func (l Location) Valid() bool {
	if math.IsNaN(l.Lat) || math.IsInf(l.Lat, 0) || math.IsNaN(l.Lng) || math.IsInf(l.Lng, 0) {
		return false
	}
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// Ride represents a single transport request from creation through its
// terminal state.
//
// DriverID is empty exactly while Status is requested; acceptance sets it
// once and it never changes afterwards. Fare is computed once at acceptance
// and never recomputed.
type Ride struct {
	ID           string
	RiderID      string
	DriverID     string
	Pickup       Location
	Dropoff      Location
	Status       RideStatus
	Fare         float64
	RequestedAt  time.Time
	CompletedAt  time.Time
	CancelledAt  time.Time
	CancelReason string
}
