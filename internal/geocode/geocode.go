package geocode

import (
	"context"
	"errors"

	"rides/internal/domain"
)

var (
	// ErrNoResult is returned when the provider resolves the address to nothing.
	ErrNoResult = errors.New("address could not be resolved")

	// ErrEmptyAddress is returned when the address string is empty.
	ErrEmptyAddress = errors.New("address is empty")

	// ErrUnavailable is returned when the provider is unreachable or times out.
	// Callers may retry; the address itself is not at fault.
	ErrUnavailable = errors.New("geocoding provider unavailable")
)

// Geocoder resolves a free-text address to coordinates. When a provider
// returns several candidates, implementations pick the highest-confidence one.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (domain.Location, error)
}
