package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
	"github.com/skylinehq/building-api/internal/pkg/response"
	"github.com/skylinehq/building-api/internal/repository"
)

// ApartmentHandler handles public apartment listing requests.
type ApartmentHandler struct {
	apartments repository.ApartmentRepository
}

// NewApartmentHandler creates a new apartment handler.
func NewApartmentHandler(apartments repository.ApartmentRepository) *ApartmentHandler {
	return &ApartmentHandler{apartments: apartments}
}

// Routes returns the apartment routes.
func (h *ApartmentHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	return r
}

// List handles GET /apartments
func (h *ApartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	apartments, err := h.apartments.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, apartments)
}

// Get handles GET /apartments/{id}
func (h *ApartmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, apierrors.NewValidationError("id", "invalid apartment id"))
		return
	}

	apartment, err := h.apartments.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	if apartment == nil {
		response.Error(w, apierrors.NewNotFoundError("Apartment"))
		return
	}
	response.OK(w, apartment)
}
