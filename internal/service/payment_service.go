package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"

	"github.com/skylinehq/building-api/internal/config"
	"github.com/skylinehq/building-api/internal/models"
	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
	"github.com/skylinehq/building-api/internal/repository"
)

// IntentClient creates payment intents against the payment processor. It is
// satisfied by the stripe-go paymentintent client and mocked in tests.
type IntentClient interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// CreateIntentRequest carries the inputs for a payment intent.
type CreateIntentRequest struct {
	UserID      uuid.UUID
	ApartmentID uuid.UUID
	// Amount is in major currency units; the processor receives minor units.
	Amount int64
}

// RecordHistoryRequest carries the fields of a new payment history record.
type RecordHistoryRequest struct {
	UserID      uuid.UUID
	ApartmentID uuid.UUID
	AmountCents int64
	Month       string
}

// PaymentService creates processor intents and manages the payment history.
type PaymentService interface {
	// CreateIntent returns the client secret of a freshly created intent.
	CreateIntent(ctx context.Context, req CreateIntentRequest) (string, error)

	RecordHistory(ctx context.Context, req RecordHistoryRequest) (*models.PaymentHistory, error)
	UserHistory(ctx context.Context, userID uuid.UUID) ([]*models.PaymentHistory, error)

	// AllHistories lists every record; the requester must be a stored admin.
	AllHistories(ctx context.Context, requesterID uuid.UUID) ([]*models.PaymentHistory, error)

	// UpdateStatus edits a record's status; the requester must be a stored admin.
	UpdateStatus(ctx context.Context, requesterID uuid.UUID, historyID string, status models.PaymentStatus) error
}

type paymentService struct {
	intents   IntentClient
	histories repository.HistoryRepository
	users     repository.UserRepository
	currency  string
	logger    *slog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	intents IntentClient,
	histories repository.HistoryRepository,
	users repository.UserRepository,
	cfg config.StripeConfig,
	logger *slog.Logger,
) PaymentService {
	return &paymentService{
		intents:   intents,
		histories: histories,
		users:     users,
		currency:  cfg.Currency,
		logger:    logger,
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, req CreateIntentRequest) (string, error) {
	if req.Amount <= 0 {
		return "", apierrors.NewValidationError("amount", "amount must be positive")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount * 100), // convert to minor units
		Currency: stripe.String(s.currency),
	}
	params.Context = ctx
	params.AddMetadata("apartment_id", req.ApartmentID.String())
	params.AddMetadata("user_id", req.UserID.String())

	intent, err := s.intents.New(params)
	if err != nil {
		// Processor failures surface as a generic internal error.
		s.logger.Error("create payment intent", slog.Any("error", err))
		return "", apierrors.ErrInternal
	}
	return intent.ClientSecret, nil
}

func (s *paymentService) RecordHistory(ctx context.Context, req RecordHistoryRequest) (*models.PaymentHistory, error) {
	if req.AmountCents <= 0 {
		return nil, apierrors.NewValidationError("amount_cents", "amount_cents must be positive")
	}

	h := &models.PaymentHistory{
		UserID:      req.UserID,
		ApartmentID: req.ApartmentID,
		AmountCents: req.AmountCents,
		Month:       req.Month,
		Status:      models.PaymentPending,
	}
	if err := s.histories.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *paymentService) UserHistory(ctx context.Context, userID uuid.UUID) ([]*models.PaymentHistory, error) {
	return s.histories.ListByUser(ctx, userID)
}

func (s *paymentService) AllHistories(ctx context.Context, requesterID uuid.UUID) ([]*models.PaymentHistory, error) {
	if err := s.requireStoredAdmin(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.histories.ListAll(ctx)
}

func (s *paymentService) UpdateStatus(ctx context.Context, requesterID uuid.UUID, historyID string, status models.PaymentStatus) error {
	if !status.Valid() {
		return apierrors.NewValidationError("status", "status must be pending, paid or rejected")
	}
	if err := s.requireStoredAdmin(ctx, requesterID); err != nil {
		return err
	}

	rows, err := s.histories.UpdateStatus(ctx, historyID, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apierrors.NewNotFoundError("Payment history")
	}
	return nil
}

func (s *paymentService) requireStoredAdmin(ctx context.Context, requesterID uuid.UUID) error {
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return err
	}
	if requester == nil || requester.Role != models.RoleAdmin {
		return apierrors.ErrForbidden
	}
	return nil
}

// Compile-time check to ensure paymentService implements PaymentService.
var _ PaymentService = (*paymentService)(nil)
