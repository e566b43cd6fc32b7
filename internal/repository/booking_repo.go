package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Booking state errors surfaced by the transition. The service layer maps
// them onto the API error taxonomy.
var (
	ErrApartmentNotFound = errors.New("booking: apartment not found")
	ErrApartmentBooked   = errors.New("booking: apartment already booked")
	ErrUserNotFound      = errors.New("booking: user not found")
	ErrUserHasBooking    = errors.New("booking: user already has a booking")
)

// BookingParams carries the inputs of a booking transition.
type BookingParams struct {
	UserID        uuid.UUID
	ApartmentID   uuid.UUID
	AgreementDate time.Time
}

// BookingRepository performs the apartment booking transition.
type BookingRepository interface {
	Book(ctx context.Context, params BookingParams) error
}

type bookingRepo struct {
	pool *pgxpool.Pool
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepo{pool: pool}
}

// Book moves an apartment from free to booked and links it to the user, all
// inside a single transaction. Both rows are locked up front, so two racing
// requests serialize on the apartment row and the loser observes the booked
// state. The updates keep conditional predicates and RowsAffected checks so a
// violation can never commit half-applied.
func (r *bookingRepo) Book(ctx context.Context, params BookingParams) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("booking: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var isBooked bool
	err = tx.QueryRow(ctx,
		`SELECT is_booked FROM apartments WHERE id = $1 FOR UPDATE`,
		params.ApartmentID,
	).Scan(&isBooked)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrApartmentNotFound
	}
	if err != nil {
		return fmt.Errorf("booking: load apartment: %w", err)
	}
	if isBooked {
		return ErrApartmentBooked
	}

	var bookingApartment *uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT booking_apartment FROM users WHERE id = $1 FOR UPDATE`,
		params.UserID,
	).Scan(&bookingApartment)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("booking: load user: %w", err)
	}
	if bookingApartment != nil {
		return ErrUserHasBooking
	}

	result, err := tx.Exec(ctx, `
UPDATE apartments
SET is_booked = TRUE,
    user_id = $2,
    agreement_date = $3,
    updated_at = now()
WHERE id = $1 AND is_booked = FALSE
`, params.ApartmentID, params.UserID, params.AgreementDate)
	if err != nil {
		return fmt.Errorf("booking: update apartment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrApartmentBooked
	}

	result, err = tx.Exec(ctx, `
UPDATE users
SET booking_apartment = $2,
    updated_at = now()
WHERE id = $1 AND booking_apartment IS NULL
`, params.UserID, params.ApartmentID)
	if err != nil {
		return fmt.Errorf("booking: update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserHasBooking
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("booking: commit: %w", err)
	}
	return nil
}

// Compile-time check to ensure bookingRepo implements BookingRepository.
var _ BookingRepository = (*bookingRepo)(nil)
