// Package handler provides HTTP handlers for the building API.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/skylinehq/building-api/internal/config"
	"github.com/skylinehq/building-api/internal/middleware"
	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
	"github.com/skylinehq/building-api/internal/pkg/response"
	"github.com/skylinehq/building-api/internal/service"
)

// AuthHandler handles registration, login and cookie-based session issuance.
type AuthHandler struct {
	users      service.UserService
	validate   *validator.Validate
	cookieName string
	cookieTTL  time.Duration
	production bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users service.UserService, authCfg config.AuthConfig, serverCfg config.ServerConfig) *AuthHandler {
	return &AuthHandler{
		users:      users,
		validate:   validator.New(),
		cookieName: authCfg.CookieName,
		cookieTTL:  authCfg.TokenTTL,
		production: serverCfg.IsProduction(),
	}
}

// CreateUserRequest is the HTTP request body for registering a user.
type CreateUserRequest struct {
	UID   string `json:"uid" validate:"required"`
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CreateUser handles POST /create-user
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, apierrors.NewValidationError("uid", "uid is required and email must be valid"))
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterRequest{
		UID:   req.UID,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, user)
}

// LoginRequest is the HTTP request body for exchanging an external uid for a token.
type LoginRequest struct {
	UID string `json:"uid" validate:"required"`
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, apierrors.NewValidationError("uid", "uid is required"))
		return
	}

	result, err := h.users.Login(r.Context(), req.UID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, result)
}

// LoginWithGoogle handles POST /login-with-google
func (h *AuthHandler) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, apierrors.NewValidationError("uid", "uid is required"))
		return
	}

	result, err := h.users.LoginWithGoogle(r.Context(), service.RegisterRequest{
		UID:   req.UID,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, result)
}

// IssueCookie handles POST /jwt. It issues the same token format as /login
// but delivers it as an httpOnly cookie instead of the response body.
func (h *AuthHandler) IssueCookie(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, apierrors.NewValidationError("uid", "uid is required"))
		return
	}

	result, err := h.users.Login(r.Context(), req.UID)
	if err != nil {
		response.Error(w, err)
		return
	}

	http.SetCookie(w, h.sessionCookie(result.Token, h.cookieTTL))
	response.Message(w, http.StatusOK, "Session cookie issued")
}

// Logout handles POST /logout by clearing the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := h.sessionCookie("", -time.Hour)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
	response.Message(w, http.StatusOK, "Logged out")
}

// sessionCookie builds the session cookie. Locally the cookie stays
// same-site; in production it must survive a cross-site frontend, which
// requires SameSite=None and Secure.
func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(ttl),
		Secure:   h.production,
		SameSite: http.SameSiteLaxMode,
	}
	if h.production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

// LoginUser handles GET /login-user. It returns the stored user for the
// current session.
func (h *AuthHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		response.Error(w, apierrors.ErrUnauthorized)
		return
	}

	user, err := h.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, user)
}
