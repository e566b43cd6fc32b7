package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/skylinehq/building-api/internal/models"
	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
	"github.com/skylinehq/building-api/internal/pkg/response"
	"github.com/skylinehq/building-api/internal/service"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// ClaimsKey is the context key for the verified session claims.
const ClaimsKey contextKey = "claims"

// Auth returns a middleware that verifies the session token and stores the
// decoded claims in the request context. The token is accepted either as a
// bearer value in the Authorization header or from the named httpOnly cookie;
// both carry the same token format.
func Auth(tokens service.TokenService, cookieName string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r, cookieName)
			if token == "" {
				response.Error(w, apierrors.ErrUnauthorized)
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				response.Error(w, apierrors.ErrUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request, cookieName string) string {
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// GetClaims retrieves the verified session claims from context. Returns nil
// outside an authenticated request.
func GetClaims(ctx context.Context) *models.Claims {
	if v := ctx.Value(ClaimsKey); v != nil {
		return v.(*models.Claims)
	}
	return nil
}
