package tests

import (
	"context"
	"testing"
	"time"

	"rides/internal/domain"
	"rides/internal/repository/memory"
)

// ──────────────────────────────────────────────
// 4. LISTING AND ORDERING
// ──────────────────────────────────────────────

func seedAt(t *testing.T, repo *memory.RideRepository, id, riderID, driverID string, status domain.RideStatus, at time.Time) {
	t.Helper()
	ride := &domain.Ride{
		ID:          id,
		RiderID:     riderID,
		DriverID:    driverID,
		Pickup:      domain.Location{Address: "a", Lat: 1, Lng: 1},
		Dropoff:     domain.Location{Address: "b", Lat: 2, Lng: 2},
		Status:      status,
		RequestedAt: at,
	}
	if err := repo.Create(context.Background(), ride); err != nil {
		t.Fatalf("seeding ride %s: %v", id, err)
	}
}

func TestListAvailable_OnlyRequested_OldestFirst(t *testing.T) {
	t.Parallel()

	repo := memory.NewRideRepository()
	now := time.Now()

	seedAt(t, repo, "ride-new", "rider-1", "", domain.RideStatusRequested, now)
	seedAt(t, repo, "ride-old", "rider-2", "", domain.RideStatusRequested, now.Add(-2*time.Hour))
	seedAt(t, repo, "ride-mid", "rider-3", "", domain.RideStatusRequested, now.Add(-1*time.Hour))
	seedAt(t, repo, "ride-taken", "rider-4", "driver-1", domain.RideStatusAccepted, now.Add(-3*time.Hour))
	seedAt(t, repo, "ride-done", "rider-5", "driver-2", domain.RideStatusCompleted, now.Add(-4*time.Hour))

	svc := newTestService(repo, NewMockGeocoder())

	rides, err := svc.ListAvailableRides(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"ride-old", "ride-mid", "ride-new"}
	if len(rides) != len(want) {
		t.Fatalf("got %d rides, want %d", len(rides), len(want))
	}
	for i, id := range want {
		if rides[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, rides[i].ID, id)
		}
	}
}

func TestListForRider_OwnRidesNewestFirst(t *testing.T) {
	t.Parallel()

	repo := memory.NewRideRepository()
	now := time.Now()

	seedAt(t, repo, "ride-1", "rider-1", "", domain.RideStatusRequested, now.Add(-3*time.Hour))
	seedAt(t, repo, "ride-2", "rider-1", "driver-1", domain.RideStatusCompleted, now.Add(-1*time.Hour))
	seedAt(t, repo, "ride-3", "rider-2", "", domain.RideStatusRequested, now.Add(-2*time.Hour))

	svc := newTestService(repo, NewMockGeocoder())

	rides, err := svc.ListRidesForRider(context.Background(), "rider-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"ride-2", "ride-1"}
	if len(rides) != len(want) {
		t.Fatalf("got %d rides, want %d", len(rides), len(want))
	}
	for i, id := range want {
		if rides[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, rides[i].ID, id)
		}
	}
}

func TestListForDriver_OwnRidesNewestFirst(t *testing.T) {
	t.Parallel()

	repo := memory.NewRideRepository()
	now := time.Now()

	seedAt(t, repo, "ride-1", "rider-1", "driver-1", domain.RideStatusCompleted, now.Add(-2*time.Hour))
	seedAt(t, repo, "ride-2", "rider-2", "driver-1", domain.RideStatusInProgress, now.Add(-1*time.Hour))
	seedAt(t, repo, "ride-3", "rider-3", "driver-2", domain.RideStatusAccepted, now)

	svc := newTestService(repo, NewMockGeocoder())

	rides, err := svc.ListRidesForDriver(context.Background(), "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"ride-2", "ride-1"}
	if len(rides) != len(want) {
		t.Fatalf("got %d rides, want %d", len(rides), len(want))
	}
	for i, id := range want {
		if rides[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, rides[i].ID, id)
		}
	}
}

func TestListAll_EveryRideNewestFirst(t *testing.T) {
	t.Parallel()

	repo := memory.NewRideRepository()
	now := time.Now()

	seedAt(t, repo, "ride-1", "rider-1", "", domain.RideStatusRequested, now.Add(-1*time.Hour))
	seedAt(t, repo, "ride-2", "rider-2", "driver-1", domain.RideStatusCancelled, now)

	svc := newTestService(repo, NewMockGeocoder())

	rides, err := svc.ListAllRides(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rides) != 2 || rides[0].ID != "ride-2" || rides[1].ID != "ride-1" {
		t.Errorf("unexpected order: %v", rideIDs(rides))
	}
}

func TestDeleteRide_RemovesRecord(t *testing.T) {
	t.Parallel()

	repo := memory.NewRideRepository()
	seedAt(t, repo, "ride-1", "rider-1", "", domain.RideStatusRequested, time.Now())

	svc := newTestService(repo, NewMockGeocoder())
	ctx := context.Background()

	if err := svc.DeleteRide(ctx, "ride-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetRide(ctx, "ride-1"); err == nil {
		t.Error("expected ride to be gone")
	}
}

func rideIDs(rides []*domain.Ride) []string {
	ids := make([]string, 0, len(rides))
	for _, r := range rides {
		ids = append(ids, r.ID)
	}
	return ids
}
