package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skylinehq/building-api/internal/models"
	"github.com/skylinehq/building-api/internal/pkg/ulid"
)

// HistoryRepository defines the interface for payment history operations.
// Records are append-only; only the status field is mutable.
type HistoryRepository interface {
	Create(ctx context.Context, h *models.PaymentHistory) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.PaymentHistory, error)
	ListAll(ctx context.Context) ([]*models.PaymentHistory, error)
	UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) (int64, error)
}

type historyRepo struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a new payment history repository.
func NewHistoryRepository(pool *pgxpool.Pool) HistoryRepository {
	return &historyRepo{pool: pool}
}

const historyColumns = `id, user_id, apartment_id, amount_cents, month, status, created_at`

func scanHistory(row pgx.Row) (*models.PaymentHistory, error) {
	var h models.PaymentHistory
	err := row.Scan(
		&h.ID,
		&h.UserID,
		&h.ApartmentID,
		&h.AmountCents,
		&h.Month,
		&h.Status,
		&h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// Create inserts a new payment history record.
func (r *historyRepo) Create(ctx context.Context, h *models.PaymentHistory) error {
	query := `
		INSERT INTO histories (id, user_id, apartment_id, amount_cents, month, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	if h.ID == "" {
		h.ID = ulid.New()
	}
	if h.Status == "" {
		h.Status = models.PaymentPending
	}

	return r.pool.QueryRow(ctx, query,
		h.ID,
		h.UserID,
		h.ApartmentID,
		h.AmountCents,
		h.Month,
		h.Status,
	).Scan(&h.CreatedAt)
}

// ListByUser retrieves a user's payment history, newest first.
func (r *historyRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.PaymentHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM histories WHERE user_id = $1 ORDER BY id DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectHistories(rows)
}

// ListAll retrieves every payment history record, newest first.
func (r *historyRepo) ListAll(ctx context.Context) ([]*models.PaymentHistory, error) {
	query := `SELECT ` + historyColumns + ` FROM histories ORDER BY id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectHistories(rows)
}

func collectHistories(rows pgx.Rows) ([]*models.PaymentHistory, error) {
	var histories []*models.PaymentHistory
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		histories = append(histories, h)
	}
	return histories, rows.Err()
}

// UpdateStatus edits a record's status and reports the number of rows affected.
func (r *historyRepo) UpdateStatus(ctx context.Context, id string, status models.PaymentStatus) (int64, error) {
	query := `UPDATE histories SET status = $2 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// Compile-time check to ensure historyRepo implements HistoryRepository.
var _ HistoryRepository = (*historyRepo)(nil)
