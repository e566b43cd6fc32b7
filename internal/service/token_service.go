// Package service provides business logic implementations.
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/skylinehq/building-api/internal/config"
	"github.com/skylinehq/building-api/internal/models"
	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
)

// TokenService issues and verifies signed session tokens. A token is a
// verifiable, expiring assertion of user identity and role; claims are not
// re-fetched from storage on verification, so a role change only becomes
// visible to token holders once their token expires.
type TokenService interface {
	Issue(user *models.User) (string, error)
	Verify(token string) (*models.Claims, error)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
}

// sessionClaims is the wire form of models.Claims. The subject carries the
// user id; uid and role ride as private claims.
type sessionClaims struct {
	UID  string      `json:"uid"`
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// NewTokenService creates a token service from auth configuration.
func NewTokenService(cfg config.AuthConfig) TokenService {
	return &tokenService{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
	}
}

// Issue signs a session token for the user. Two calls with the same user at
// different times yield different tokens but equivalent claims.
func (s *tokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UID:  user.UID,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a session token. Any failure (missing,
// malformed, expired, wrong key) collapses to Unauthorized.
func (s *tokenService) Verify(tokenString string) (*models.Claims, error) {
	if tokenString == "" {
		return nil, apierrors.ErrUnauthorized
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apierrors.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apierrors.ErrUnauthorized
	}
	if !claims.Role.Valid() {
		return nil, apierrors.ErrUnauthorized
	}

	return &models.Claims{
		UserID: userID,
		UID:    claims.UID,
		Role:   claims.Role,
	}, nil
}

// Compile-time check to ensure tokenService implements TokenService.
var _ TokenService = (*tokenService)(nil)
