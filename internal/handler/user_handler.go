package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skylinehq/building-api/internal/middleware"
	"github.com/skylinehq/building-api/internal/models"
	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
	"github.com/skylinehq/building-api/internal/pkg/response"
	"github.com/skylinehq/building-api/internal/service"
)

// UserHandler handles user listing and role management.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /users. Administrators are excluded from the listing.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListNonAdmins(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, users)
}

// UpdateRoleRequest is the HTTP request body for changing a user's role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateRole handles PATCH /update-user-role/{id}. The requester must be an
// admin according to the stored record, not the token claim.
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.Error(w, apierrors.ErrUnauthorized)
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, apierrors.NewValidationError("id", "invalid user id"))
		return
	}

	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}

	// Role validation is the service's job; it runs after the admin check so
	// a non-admin always gets Forbidden regardless of the role value.
	if err := h.users.SetRole(r.Context(), claims.UserID, targetID, models.Role(req.Role)); err != nil {
		response.Error(w, err)
		return
	}

	response.Message(w, http.StatusOK, "User role updated successfully")
}
