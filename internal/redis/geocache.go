package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"rides/internal/domain"
	"rides/internal/geocode"
)

const geocodeCachePrefix = "geocode:"

// cachedLocation is the stored form of a resolved address.
type cachedLocation struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// CachedGeocoder wraps a Geocoder with a Redis read-through cache.
// Resolved addresses do not move, so hits skip the provider entirely.
// Cache failures fall through to the inner geocoder.
type CachedGeocoder struct {
	inner  geocode.Geocoder
	client *redis.Client
	ttl    time.Duration
}

// NewCachedGeocoder creates a caching decorator around inner.
func NewCachedGeocoder(inner geocode.Geocoder, client *redis.Client, ttl time.Duration) *CachedGeocoder {
	return &CachedGeocoder{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

// Resolve returns the cached location for address, consulting the inner
// geocoder on a miss. Only successful resolutions are cached; failures are
// never negative-cached.
func (g *CachedGeocoder) Resolve(ctx context.Context, address string) (domain.Location, error) {
	if address == "" {
		return domain.Location{}, geocode.ErrEmptyAddress
	}

	key := geocodeCachePrefix + address

	// A miss or any Redis trouble falls through to the provider.
	if data, err := g.client.Get(ctx, key).Bytes(); err == nil {
		var cached cachedLocation
		if err := json.Unmarshal(data, &cached); err == nil {
			return domain.Location{Address: cached.Address, Lat: cached.Lat, Lng: cached.Lng}, nil
		}
	}

	loc, err := g.inner.Resolve(ctx, address)
	if err != nil {
		return domain.Location{}, err
	}

	payload, err := json.Marshal(cachedLocation{Address: loc.Address, Lat: loc.Lat, Lng: loc.Lng})
	if err == nil {
		_ = g.client.Set(ctx, key, payload, g.ttl).Err()
	}

	return loc, nil
}
