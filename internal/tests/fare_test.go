package tests

import (
	"math"
	"testing"

	"rides/internal/domain"
	"rides/internal/fare"
)

// ──────────────────────────────────────────────
// 1. DISTANCE AND FARE PROPERTIES
// ──────────────────────────────────────────────

func TestDistance_SamePoint_IsZero(t *testing.T) {
	t.Parallel()

	points := []domain.Location{
		{Lat: 0, Lng: 0},
		{Lat: 17.3850, Lng: 78.4867},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 90, Lng: 0},
		{Lat: -90, Lng: 180},
	}

	for _, p := range points {
		if d := fare.DistanceMeters(p, p); d != 0 {
			t.Errorf("distance from %+v to itself = %v, want 0", p, d)
		}
	}
}

func TestDistance_HundredthDegreeAtEquator(t *testing.T) {
	t.Parallel()

	a := domain.Location{Lat: 0, Lng: 0}
	b := domain.Location{Lat: 0.01, Lng: 0}

	// 0.01 degrees of latitude is about 1.112 km on a 6371 km sphere.
	d := fare.DistanceMeters(a, b)
	if math.Abs(d-1112) > 3 {
		t.Errorf("distance = %v m, want ~1112 m", d)
	}
}

func TestDistance_IsSymmetric(t *testing.T) {
	t.Parallel()

	a := domain.Location{Lat: 17.3850, Lng: 78.4867}
	b := domain.Location{Lat: 17.4239, Lng: 78.4738}

	if d1, d2 := fare.DistanceMeters(a, b), fare.DistanceMeters(b, a); d1 != d2 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestFare_ZeroDistance_IsBaseFare(t *testing.T) {
	t.Parallel()

	calc := fare.NewCalculator(20, 10)

	if got := calc.Fare(0); got != 20 {
		t.Errorf("fare(0) = %v, want base fare 20", got)
	}
}

func TestFare_LinearInDistance(t *testing.T) {
	t.Parallel()

	calc := fare.NewCalculator(20, 10)

	testCases := []struct {
		name           string
		distanceMeters float64
		want           float64
	}{
		{"one km", 1000, 30},
		{"half km", 500, 25},
		{"ten km", 10000, 120},
		{"fractional cents round half up", 1234, 32.34},
		{"sub-cent rounds to nearest", 1001, 30.01},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := calc.Fare(tc.distanceMeters); got != tc.want {
				t.Errorf("fare(%v) = %v, want %v", tc.distanceMeters, got, tc.want)
			}
		})
	}
}

func TestFare_RoundsHalfAwayFromZero(t *testing.T) {
	t.Parallel()

	// base 0, rate 1: fare of 125 m is 0.125, which must round to 0.13,
	// not bankers-round to 0.12.
	calc := fare.NewCalculator(0, 1)

	if got := calc.Fare(125); got != 0.13 {
		t.Errorf("fare(125m) = %v, want 0.13", got)
	}
}

func TestFare_RatesComeFromConfiguration(t *testing.T) {
	t.Parallel()

	cheap := fare.NewCalculator(5, 1)
	pricey := fare.NewCalculator(50, 25)

	if cheap.Fare(2000) != 7 {
		t.Errorf("cheap fare(2km) = %v, want 7", cheap.Fare(2000))
	}
	if pricey.Fare(2000) != 100 {
		t.Errorf("pricey fare(2km) = %v, want 100", pricey.Fare(2000))
	}
}

func TestFare_HyderabadScenario(t *testing.T) {
	t.Parallel()

	pickup := domain.Location{Lat: 17.3850, Lng: 78.4867}
	dropoff := domain.Location{Lat: 17.4239, Lng: 78.4738}

	d := fare.DistanceMeters(pickup, dropoff)
	if d < 4450 || d > 4650 {
		t.Errorf("distance = %v m, want roughly 4.5 km", d)
	}

	calc := fare.NewCalculator(20, 10)
	got := calc.Fare(d)

	// base 20 + 10/km over ~4.54 km.
	if got < 64.5 || got > 66.5 {
		t.Errorf("fare = %v, want roughly 65.4", got)
	}

	// Result must already be rounded to cents.
	if got != math.Round(got*100)/100 {
		t.Errorf("fare %v is not rounded to 2 decimals", got)
	}
}
