package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skylinehq/building-api/internal/config"
	"github.com/skylinehq/building-api/internal/models"
	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
)

func newTestTokenService(ttl time.Duration) TokenService {
	return NewTokenService(config.AuthConfig{
		JWTSecret: "test-secret-key",
		TokenTTL:  ttl,
	})
}

func TestTokenService_IssueVerify(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	user := &models.User{
		ID:   uuid.New(),
		UID:  "firebase-uid-1",
		Role: models.RoleAdmin,
	}

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("UserID = %v, want %v", claims.UserID, user.ID)
	}
	if claims.UID != user.UID {
		t.Errorf("UID = %v, want %v", claims.UID, user.UID)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("Role = %v, want %v", claims.Role, models.RoleAdmin)
	}
}

func TestTokenService_VerifyExpired(t *testing.T) {
	svc := newTestTokenService(-time.Minute)

	user := &models.User{ID: uuid.New(), UID: "uid", Role: models.RoleUser}
	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = svc.Verify(token)
	if err != apierrors.ErrUnauthorized {
		t.Errorf("Verify() error = %v, want ErrUnauthorized", err)
	}
}

func TestTokenService_VerifyWrongKey(t *testing.T) {
	issuer := NewTokenService(config.AuthConfig{JWTSecret: "key-a", TokenTTL: time.Hour})
	verifier := NewTokenService(config.AuthConfig{JWTSecret: "key-b", TokenTTL: time.Hour})

	user := &models.User{ID: uuid.New(), UID: "uid", Role: models.RoleUser}
	token, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	_, err = verifier.Verify(token)
	if err != apierrors.ErrUnauthorized {
		t.Errorf("Verify() error = %v, want ErrUnauthorized", err)
	}
}

func TestTokenService_VerifyMalformed(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.Verify(token); err != apierrors.ErrUnauthorized {
			t.Errorf("Verify(%q) error = %v, want ErrUnauthorized", token, err)
		}
	}
}

func TestTokenService_ReissueEquivalentClaims(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	user := &models.User{ID: uuid.New(), UID: "uid", Role: models.RoleUser}

	first, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	second, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	a, err := svc.Verify(first)
	if err != nil {
		t.Fatalf("Verify(first) error = %v", err)
	}
	b, err := svc.Verify(second)
	if err != nil {
		t.Fatalf("Verify(second) error = %v", err)
	}
	if *a != *b {
		t.Errorf("claims differ between reissues: %+v vs %+v", a, b)
	}
}
