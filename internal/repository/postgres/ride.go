package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rides/internal/domain"
	"rides/internal/repository"
)

const rideColumns = `id, rider_id, driver_id, pickup_address, pickup_lat, pickup_lng,
		dropoff_address, dropoff_lat, dropoff_lng, status, fare, requested_at,
		completed_at, cancelled_at, cancel_reason`

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
// Its conditional Update carries the expected status into the WHERE clause,
// so a lost race fails at the database rather than overwriting.
type RideRepository struct {
	q Querier
}

// Ensure the interface is satisfied.
var _ repository.RideRepository = (*RideRepository)(nil)

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (id, rider_id, driver_id, pickup_address, pickup_lat, pickup_lng,
			dropoff_address, dropoff_lat, dropoff_lng, status, fare, requested_at,
			completed_at, cancelled_at, cancel_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.RiderID,
		nullString(ride.DriverID),
		ride.Pickup.Address,
		ride.Pickup.Lat,
		ride.Pickup.Lng,
		ride.Dropoff.Address,
		ride.Dropoff.Lat,
		ride.Dropoff.Lng,
		ride.Status,
		ride.Fare,
		ride.RequestedAt,
		nullTime(ride.CompletedAt),
		nullTime(ride.CancelledAt),
		nullString(ride.CancelReason),
	)

	return wrapErr(ctx, err)
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, wrapErr(ctx, err)
	}

	return ride, nil
}

// ListByStatus retrieves rides in the given status, oldest first.
func (r *RideRepository) ListByStatus(ctx context.Context, status domain.RideStatus) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE status = $1 ORDER BY requested_at ASC`
	return r.list(ctx, query, status)
}

// ListByRider retrieves a rider's rides, newest first.
func (r *RideRepository) ListByRider(ctx context.Context, riderID string) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE rider_id = $1 ORDER BY requested_at DESC`
	return r.list(ctx, query, riderID)
}

// ListByDriver retrieves a driver's rides, newest first.
func (r *RideRepository) ListByDriver(ctx context.Context, driverID string) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE driver_id = $1 ORDER BY requested_at DESC`
	return r.list(ctx, query, driverID)
}

// ListAll retrieves all rides, newest first.
func (r *RideRepository) ListAll(ctx context.Context) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides ORDER BY requested_at DESC`
	return r.list(ctx, query)
}

// Update persists ride if its stored status still equals expected.
func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride, expected domain.RideStatus) error {
	query := `
		UPDATE rides
		SET driver_id = $1, status = $2, fare = $3, completed_at = $4,
			cancelled_at = $5, cancel_reason = $6
		WHERE id = $7 AND status = $8
	`

	result, err := r.q.ExecContext(ctx, query,
		nullString(ride.DriverID),
		ride.Status,
		ride.Fare,
		nullTime(ride.CompletedAt),
		nullTime(ride.CancelledAt),
		nullString(ride.CancelReason),
		ride.ID,
		expected,
	)
	if err != nil {
		return wrapErr(ctx, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapErr(ctx, err)
	}

	if rowsAffected == 0 {
		// Zero rows means either the ride is gone or its status moved on.
		if _, err := r.GetByID(ctx, ride.ID); err != nil {
			return err
		}
		return repository.ErrStaleStatus
	}

	return nil
}

// Delete removes a ride.
func (r *RideRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM rides WHERE id = $1`, id)
	if err != nil {
		return wrapErr(ctx, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapErr(ctx, err)
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *RideRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Ride, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(ctx, err)
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, wrapErr(ctx, err)
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRide(row rowScanner) (*domain.Ride, error) {
	var ride domain.Ride
	var driverID sql.NullString
	var completedAt sql.NullTime
	var cancelledAt sql.NullTime
	var cancelReason sql.NullString

	err := row.Scan(
		&ride.ID,
		&ride.RiderID,
		&driverID,
		&ride.Pickup.Address,
		&ride.Pickup.Lat,
		&ride.Pickup.Lng,
		&ride.Dropoff.Address,
		&ride.Dropoff.Lat,
		&ride.Dropoff.Lng,
		&ride.Status,
		&ride.Fare,
		&ride.RequestedAt,
		&completedAt,
		&cancelledAt,
		&cancelReason,
	)
	if err != nil {
		return nil, err
	}

	if driverID.Valid {
		ride.DriverID = driverID.String
	}
	if completedAt.Valid {
		ride.CompletedAt = completedAt.Time
	}
	if cancelledAt.Valid {
		ride.CancelledAt = cancelledAt.Time
	}
	if cancelReason.Valid {
		ride.CancelReason = cancelReason.String
	}

	return &ride, nil
}

// wrapErr maps deadline and cancellation failures to ErrUnavailable so the
// service layer can surface them as retryable.
func wrapErr(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}
	return err
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
