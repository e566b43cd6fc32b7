package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/skylinehq/building-api/internal/models"
	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
	"github.com/skylinehq/building-api/internal/repository"
)

// LoginResult bundles the user and the issued session token.
type LoginResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// RegisterRequest carries the fields of a new user document.
type RegisterRequest struct {
	UID   string
	Name  string
	Email string
}

// UserService handles registration, login and role management.
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)

	// Login exchanges an external auth identity for a session token.
	Login(ctx context.Context, uid string) (*LoginResult, error)

	// LoginWithGoogle upserts the user by uid, then issues a token. A first
	// login creates the record and the token carries the freshly inserted id.
	LoginWithGoogle(ctx context.Context, req RegisterRequest) (*LoginResult, error)

	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListNonAdmins(ctx context.Context) ([]*models.User, error)

	// SetRole changes a user's role. The requester's admin status is checked
	// against the stored record, not the token claim, so a demoted admin
	// loses the privilege before their token expires.
	SetRole(ctx context.Context, requesterID, targetID uuid.UUID, role models.Role) error
}

type userService struct {
	users  repository.UserRepository
	tokens TokenService
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, tokens TokenService) UserService {
	return &userService{users: users, tokens: tokens}
}

func (s *userService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	uid := strings.TrimSpace(req.UID)
	if uid == "" {
		return nil, apierrors.NewValidationError("uid", "uid is required")
	}

	existing, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierrors.NewConflictError("User already registered")
	}

	user := &models.User{
		UID:   uid,
		Name:  req.Name,
		Email: req.Email,
		Role:  models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, uid string) (*LoginResult, error) {
	user, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierrors.NewNotFoundError("User")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token}, nil
}

func (s *userService) LoginWithGoogle(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	uid := strings.TrimSpace(req.UID)
	if uid == "" {
		return nil, apierrors.NewValidationError("uid", "uid is required")
	}

	user, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &models.User{
			UID:   uid,
			Name:  req.Name,
			Email: req.Email,
			Role:  models.RoleUser,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token}, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierrors.NewNotFoundError("User")
	}
	return user, nil
}

func (s *userService) ListNonAdmins(ctx context.Context) ([]*models.User, error) {
	return s.users.ListNonAdmins(ctx)
}

func (s *userService) SetRole(ctx context.Context, requesterID, targetID uuid.UUID, role models.Role) error {
	// The authorization check comes first: a non-admin requester is rejected
	// the same way no matter what role value they sent.
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return err
	}
	if requester == nil || requester.Role != models.RoleAdmin {
		return apierrors.ErrForbidden
	}

	if !role.Valid() {
		return apierrors.NewValidationError("role", "role must be user or admin")
	}

	rows, err := s.users.UpdateRole(ctx, targetID, role)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apierrors.NewNotFoundError("User")
	}
	return nil
}

// Compile-time check to ensure userService implements UserService.
var _ UserService = (*userService)(nil)
