package fare

import (
	"math"

	"rides/internal/domain"
)

const earthRadiusKm = 6371.0

// Calculator derives ride fares from great-circle distance. Rates come
// from configuration, not from the calculation itself.
type Calculator struct {
	BaseFare  float64
	RatePerKm float64
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(baseFare, ratePerKm float64) *Calculator {
	return &Calculator{
		BaseFare:  baseFare,
		RatePerKm: ratePerKm,
	}
}

// DistanceMeters returns the haversine distance between two points in meters.
func DistanceMeters(a, b domain.Location) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c * 1000
}

// Fare returns base fare plus the per-kilometer charge for the given
// distance, rounded to cents (half away from zero).
func (c *Calculator) Fare(distanceMeters float64) float64 {
	amount := c.BaseFare + c.RatePerKm*(distanceMeters/1000)
	return roundToCents(amount)
}

// roundToCents rounds half away from zero to 2 decimal places.
func roundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
