package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/skylinehq/building-api/internal/middleware"
	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
	"github.com/skylinehq/building-api/internal/pkg/response"
	"github.com/skylinehq/building-api/internal/service"
)

// BookingHandler handles the agreement (booking) routes.
type BookingHandler struct {
	bookings service.BookingService
	validate *validator.Validate
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		validate: validator.New(),
	}
}

// AgreementRequest is the HTTP request body for booking an apartment.
type AgreementRequest struct {
	UserID        string `json:"userId" validate:"required"`
	ApartmentID   string `json:"apartmentId" validate:"required"`
	AgreementDate string `json:"agreementDate" validate:"required"`
}

// Agreement handles POST /agreement. It runs the booking transition: the
// apartment moves from free to booked and links to the user, or the request
// fails with a specific conflict reason.
func (h *BookingHandler) Agreement(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.Error(w, apierrors.ErrUnauthorized)
		return
	}

	var req AgreementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Missing required fields"))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Error(w, apierrors.NewValidationError("userId", "invalid user id"))
		return
	}
	apartmentID, err := uuid.Parse(req.ApartmentID)
	if err != nil {
		response.Error(w, apierrors.NewValidationError("apartmentId", "invalid apartment id"))
		return
	}
	agreementDate, err := time.Parse("2006-01-02", req.AgreementDate)
	if err != nil {
		response.Error(w, apierrors.NewValidationError("agreementDate", "agreement date must be YYYY-MM-DD"))
		return
	}

	if err := h.bookings.Book(r.Context(), userID, apartmentID, agreementDate); err != nil {
		if apiErr, ok := err.(*apierrors.APIError); ok && apiErr.StatusCode == http.StatusConflict {
			middleware.IncrementBookingConflicts()
		}
		response.Error(w, err)
		return
	}

	middleware.IncrementBookings()
	response.Message(w, http.StatusOK, "Apartment booked successfully")
}

// UserApartment handles GET /user-apartment. It returns the caller's booked
// apartment, or null data when no booking exists.
func (h *BookingHandler) UserApartment(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.Error(w, apierrors.ErrUnauthorized)
		return
	}

	apartment, err := h.bookings.UserApartment(r.Context(), claims.UserID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, apartment)
}
