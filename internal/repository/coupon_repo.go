package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skylinehq/building-api/internal/models"
)

// CouponRepository defines the interface for coupon operations.
type CouponRepository interface {
	List(ctx context.Context) ([]*models.Coupon, error)
	Create(ctx context.Context, c *models.Coupon) error
}

type couponRepo struct {
	pool *pgxpool.Pool
}

// NewCouponRepository creates a new coupon repository.
func NewCouponRepository(pool *pgxpool.Pool) CouponRepository {
	return &couponRepo{pool: pool}
}

// List retrieves all coupons, newest first.
func (r *couponRepo) List(ctx context.Context) ([]*models.Coupon, error) {
	query := `SELECT id, code, discount, description, created_at FROM coupons ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []*models.Coupon
	for rows.Next() {
		var c models.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.Discount, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		coupons = append(coupons, &c)
	}
	return coupons, rows.Err()
}

// Create inserts a new coupon.
func (r *couponRepo) Create(ctx context.Context, c *models.Coupon) error {
	query := `
		INSERT INTO coupons (id, code, discount, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	return r.pool.QueryRow(ctx, query, c.ID, c.Code, c.Discount, c.Description).Scan(&c.CreatedAt)
}

// Compile-time check to ensure couponRepo implements CouponRepository.
var _ CouponRepository = (*couponRepo)(nil)
