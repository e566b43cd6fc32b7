package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
	"github.com/skylinehq/building-api/internal/pkg/response"
	"github.com/skylinehq/building-api/internal/service"
)

// CouponHandler handles the public coupon routes.
type CouponHandler struct {
	coupons  service.CouponService
	validate *validator.Validate
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(coupons service.CouponService) *CouponHandler {
	return &CouponHandler{
		coupons:  coupons,
		validate: validator.New(),
	}
}

// Routes returns the coupon routes, mounted under /api/coupons.
func (h *CouponHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	return r
}

// List handles GET /api/coupons
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.coupons.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, coupons)
}

// CreateCouponRequest is the HTTP request body for creating a coupon.
type CreateCouponRequest struct {
	Code        string `json:"code" validate:"required"`
	Discount    int    `json:"discount" validate:"gte=0,lte=100"`
	Description string `json:"description" validate:"required"`
}

// Create handles POST /api/coupons
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Failed to create coupon"))
		return
	}

	coupon, err := h.coupons.Create(r.Context(), service.CreateCouponRequest{
		Code:        req.Code,
		Discount:    req.Discount,
		Description: req.Description,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, coupon)
}
