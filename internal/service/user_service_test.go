package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skylinehq/building-api/internal/models"
	apierrors "github.com/skylinehq/building-api/internal/pkg/errors"
	"github.com/skylinehq/building-api/internal/repository"
)

// --- Mock Repositories ---

type mockUserRepo struct {
	users map[uuid.UUID]*models.User
	byUID map[string]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users: make(map[uuid.UUID]*models.User),
		byUID: make(map[string]*models.User),
	}
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	m.byUID[user.UID] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepo) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	return m.byUID[uid], nil
}

func (m *mockUserRepo) ListNonAdmins(ctx context.Context) ([]*models.User, error) {
	var result []*models.User
	for _, u := range m.users {
		if u.Role != models.RoleAdmin {
			result = append(result, u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (int64, error) {
	u, ok := m.users[id]
	if !ok {
		return 0, nil
	}
	u.Role = role
	return 1, nil
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

// stubTokenService issues a fixed token and records the last user it signed.
type stubTokenService struct {
	lastIssued *models.User
}

func (s *stubTokenService) Issue(user *models.User) (string, error) {
	s.lastIssued = user
	return "token-" + user.ID.String(), nil
}

func (s *stubTokenService) Verify(token string) (*models.Claims, error) {
	return nil, apierrors.ErrUnauthorized
}

var _ TokenService = (*stubTokenService)(nil)

func seedUser(repo *mockUserRepo, role models.Role) *models.User {
	u := &models.User{
		ID:   uuid.New(),
		UID:  "uid-" + uuid.NewString(),
		Role: role,
	}
	repo.users[u.ID] = u
	repo.byUID[u.UID] = u
	return u
}

// --- Tests ---

func TestUserService_Register(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, &stubTokenService{})
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{UID: "fb-123", Name: "Alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("Register() did not assign an id")
	}
	if user.Role != models.RoleUser {
		t.Errorf("Role = %v, want %v", user.Role, models.RoleUser)
	}
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, &stubTokenService{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{UID: "fb-123"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err := svc.Register(ctx, RegisterRequest{UID: "fb-123"})
	apiErr := apierrors.AsAPIError(err)
	if apiErr.Code != "conflict" {
		t.Errorf("Register() duplicate code = %v, want conflict", apiErr.Code)
	}
}

func TestUserService_RegisterEmptyUID(t *testing.T) {
	svc := NewUserService(newMockUserRepo(), &stubTokenService{})

	_, err := svc.Register(context.Background(), RegisterRequest{UID: "   "})
	apiErr := apierrors.AsAPIError(err)
	if apiErr.Code != "validation_error" {
		t.Errorf("Register() code = %v, want validation_error", apiErr.Code)
	}
}

func TestUserService_Login(t *testing.T) {
	repo := newMockUserRepo()
	tokens := &stubTokenService{}
	svc := NewUserService(repo, tokens)
	user := seedUser(repo, models.RoleUser)

	result, err := svc.Login(context.Background(), user.UID)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.ID != user.ID {
		t.Errorf("User.ID = %v, want %v", result.User.ID, user.ID)
	}
	if result.Token == "" {
		t.Error("Login() returned empty token")
	}
	if tokens.lastIssued.ID != user.ID {
		t.Errorf("token issued for %v, want %v", tokens.lastIssued.ID, user.ID)
	}
}

func TestUserService_LoginUnknownUID(t *testing.T) {
	svc := NewUserService(newMockUserRepo(), &stubTokenService{})

	_, err := svc.Login(context.Background(), "no-such-uid")
	apiErr := apierrors.AsAPIError(err)
	if apiErr.Code != "not_found" {
		t.Errorf("Login() code = %v, want not_found", apiErr.Code)
	}
}

func TestUserService_LoginWithGoogleFirstLogin(t *testing.T) {
	repo := newMockUserRepo()
	tokens := &stubTokenService{}
	svc := NewUserService(repo, tokens)
	ctx := context.Background()

	result, err := svc.LoginWithGoogle(ctx, RegisterRequest{UID: "google-1", Name: "Bob"})
	if err != nil {
		t.Fatalf("LoginWithGoogle() error = %v", err)
	}

	// The token must carry the id of the record that was just inserted.
	stored := repo.byUID["google-1"]
	if stored == nil {
		t.Fatal("LoginWithGoogle() did not create the user")
	}
	if tokens.lastIssued.ID != stored.ID {
		t.Errorf("token issued for %v, want inserted id %v", tokens.lastIssued.ID, stored.ID)
	}
	if result.User.ID != stored.ID {
		t.Errorf("User.ID = %v, want %v", result.User.ID, stored.ID)
	}
}

func TestUserService_LoginWithGoogleExistingUser(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, &stubTokenService{})
	user := seedUser(repo, models.RoleAdmin)

	result, err := svc.LoginWithGoogle(context.Background(), RegisterRequest{UID: user.UID, Name: "ignored"})
	if err != nil {
		t.Fatalf("LoginWithGoogle() error = %v", err)
	}
	if result.User.ID != user.ID {
		t.Errorf("User.ID = %v, want existing id %v", result.User.ID, user.ID)
	}
	if result.User.Role != models.RoleAdmin {
		t.Errorf("Role = %v, want admin preserved", result.User.Role)
	}
	if len(repo.users) != 1 {
		t.Errorf("user count = %d, want 1 (no duplicate insert)", len(repo.users))
	}
}

func TestUserService_SetRole(t *testing.T) {
	tests := []struct {
		name          string
		requesterRole models.Role
		role          models.Role
		targetExists  bool
		wantCode      string
	}{
		{
			name:          "admin promotes user",
			requesterRole: models.RoleAdmin,
			role:          models.RoleAdmin,
			targetExists:  true,
		},
		{
			name:          "non-admin is forbidden",
			requesterRole: models.RoleUser,
			role:          models.RoleAdmin,
			targetExists:  true,
			wantCode:      "forbidden",
		},
		{
			name:          "invalid role",
			requesterRole: models.RoleAdmin,
			role:          models.Role("superuser"),
			targetExists:  true,
			wantCode:      "validation_error",
		},
		{
			name:          "non-admin with invalid role is still forbidden",
			requesterRole: models.RoleUser,
			role:          models.Role("superuser"),
			targetExists:  true,
			wantCode:      "forbidden",
		},
		{
			name:          "missing target",
			requesterRole: models.RoleAdmin,
			role:          models.RoleUser,
			targetExists:  false,
			wantCode:      "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockUserRepo()
			svc := NewUserService(repo, &stubTokenService{})

			requester := seedUser(repo, tt.requesterRole)
			targetID := uuid.New()
			if tt.targetExists {
				targetID = seedUser(repo, models.RoleUser).ID
			}

			err := svc.SetRole(context.Background(), requester.ID, targetID, tt.role)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("SetRole() error = %v", err)
				}
				if repo.users[targetID].Role != tt.role {
					t.Errorf("target role = %v, want %v", repo.users[targetID].Role, tt.role)
				}
				return
			}
			apiErr := apierrors.AsAPIError(err)
			if apiErr.Code != tt.wantCode {
				t.Errorf("SetRole() code = %v, want %v", apiErr.Code, tt.wantCode)
			}
		})
	}
}

// The admin check reads the stored record, so a demotion takes effect even
// while the demoted admin still holds a token claiming the admin role.
func TestUserService_SetRoleUsesStoredRole(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo, &stubTokenService{})
	ctx := context.Background()

	admin := seedUser(repo, models.RoleAdmin)
	target := seedUser(repo, models.RoleUser)

	// Demote the admin behind their back.
	admin.Role = models.RoleUser

	err := svc.SetRole(ctx, admin.ID, target.ID, models.RoleAdmin)
	apiErr := apierrors.AsAPIError(err)
	if apiErr.Code != "forbidden" {
		t.Errorf("SetRole() after demotion code = %v, want forbidden", apiErr.Code)
	}
	if target.Role != models.RoleUser {
		t.Errorf("target role changed to %v despite forbidden", target.Role)
	}
}
