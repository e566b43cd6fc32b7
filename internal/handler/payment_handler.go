package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/skylinehq/building-api/internal/middleware"
	"github.com/skylinehq/building-api/internal/models"
	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
	"github.com/skylinehq/building-api/internal/pkg/response"
	"github.com/skylinehq/building-api/internal/service"
)

// PaymentHandler handles payment intents and payment history.
type PaymentHandler struct {
	payments service.PaymentService
	validate *validator.Validate
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		validate: validator.New(),
	}
}

// CreateIntentRequest is the HTTP request body for creating a payment intent.
// Amount is in major currency units; the processor receives minor units.
type CreateIntentRequest struct {
	ApartmentID string `json:"apartmentId" validate:"required"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
}

// CreateIntent handles POST /create-payment-intent
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.Error(w, apierrors.ErrUnauthorized)
		return
	}

	var req CreateIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Missing required fields"))
		return
	}

	apartmentID, err := uuid.Parse(req.ApartmentID)
	if err != nil {
		response.Error(w, apierrors.NewValidationError("apartmentId", "invalid apartment id"))
		return
	}

	clientSecret, err := h.payments.CreateIntent(r.Context(), service.CreateIntentRequest{
		UserID:      claims.UserID,
		ApartmentID: apartmentID,
		Amount:      req.Amount,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	middleware.IncrementPaymentIntents()
	response.OK(w, map[string]string{"clientSecret": clientSecret})
}

// CreateHistoryRequest is the HTTP request body for recording a payment.
type CreateHistoryRequest struct {
	ApartmentID string `json:"apartmentId" validate:"required"`
	AmountCents int64  `json:"amountCents" validate:"required,gt=0"`
	Month       string `json:"month"`
}

// CreateHistory handles POST /create-payment-history
func (h *PaymentHandler) CreateHistory(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.Error(w, apierrors.ErrUnauthorized)
		return
	}

	var req CreateHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Missing required fields"))
		return
	}

	apartmentID, err := uuid.Parse(req.ApartmentID)
	if err != nil {
		response.Error(w, apierrors.NewValidationError("apartmentId", "invalid apartment id"))
		return
	}

	history, err := h.payments.RecordHistory(r.Context(), service.RecordHistoryRequest{
		UserID:      claims.UserID,
		ApartmentID: apartmentID,
		AmountCents: req.AmountCents,
		Month:       req.Month,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, history)
}

// UserHistory handles GET /get-user-history
func (h *PaymentHandler) UserHistory(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.Error(w, apierrors.ErrUnauthorized)
		return
	}

	histories, err := h.payments.UserHistory(r.Context(), claims.UserID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, histories)
}

// AllHistories handles GET /apartments-payments. Admin only.
func (h *PaymentHandler) AllHistories(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.Error(w, apierrors.ErrUnauthorized)
		return
	}

	histories, err := h.payments.AllHistories(r.Context(), claims.UserID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, histories)
}

// UpdateStatusRequest is the HTTP request body for editing a history status.
type UpdateStatusRequest struct {
	ID     string `json:"id" validate:"required"`
	Action string `json:"action" validate:"required"`
}

// UpdateStatus handles PATCH /update-payment-history-status. Admin only.
func (h *PaymentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.Error(w, apierrors.ErrUnauthorized)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Missing required fields"))
		return
	}

	err := h.payments.UpdateStatus(r.Context(), claims.UserID, req.ID, models.PaymentStatus(req.Action))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Message(w, http.StatusOK, "Payment status updated")
}
