// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skylinehq/building-api/internal/models"
)

// ApartmentRepository defines the interface for apartment operations.
type ApartmentRepository interface {
	List(ctx context.Context) ([]*models.Apartment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Apartment, error)
}

type apartmentRepo struct {
	pool *pgxpool.Pool
}

// NewApartmentRepository creates a new apartment repository.
func NewApartmentRepository(pool *pgxpool.Pool) ApartmentRepository {
	return &apartmentRepo{pool: pool}
}

const apartmentColumns = `id, block, floor, apartment_no, rent_cents, image_url, is_booked, user_id, agreement_date, created_at, updated_at`

func scanApartment(row pgx.Row) (*models.Apartment, error) {
	var a models.Apartment
	err := row.Scan(
		&a.ID,
		&a.Block,
		&a.Floor,
		&a.ApartmentNo,
		&a.RentCents,
		&a.ImageURL,
		&a.IsBooked,
		&a.UserID,
		&a.AgreementDate,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List retrieves all apartments ordered by block and unit number.
func (r *apartmentRepo) List(ctx context.Context) ([]*models.Apartment, error) {
	query := `SELECT ` + apartmentColumns + ` FROM apartments ORDER BY block, floor, apartment_no`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apartments []*models.Apartment
	for rows.Next() {
		a, err := scanApartment(rows)
		if err != nil {
			return nil, err
		}
		apartments = append(apartments, a)
	}
	return apartments, rows.Err()
}

// GetByID retrieves an apartment by ID. Returns nil when no row matches.
func (r *apartmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Apartment, error) {
	query := `SELECT ` + apartmentColumns + ` FROM apartments WHERE id = $1`

	a, err := scanApartment(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Compile-time check to ensure apartmentRepo implements ApartmentRepository.
var _ ApartmentRepository = (*apartmentRepo)(nil)
