package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tradehub-io/tradehub-backend/internal/users"
	"github.com/tradehub-io/tradehub-backend/pkg/config"
	"github.com/tradehub-io/tradehub-backend/pkg/db/models"
	"github.com/tradehub-io/tradehub-backend/pkg/enums"
	pkgerrors "github.com/tradehub-io/tradehub-backend/pkg/errors"
	"github.com/tradehub-io/tradehub-backend/pkg/security"
)

type stubUserRepo struct {
	byUsername map[string]*models.User
	created    []users.CreateUserDTO
	createErr  error
	lastLogin  *uuid.UUID
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, dto)
	user := &models.User{
		ID:           uuid.New(),
		Username:     dto.Username,
		PasswordHash: dto.PasswordHash,
		Role:         dto.Role,
	}
	if s.byUsername == nil {
		s.byUsername = map[string]*models.User{}
	}
	s.byUsername[dto.Username] = user
	return user, nil
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := s.byUsername[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogin = &id
	return nil
}

type stubSessions struct {
	generated []string
	revoked   []string
}

func (s *stubSessions) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return "refresh-" + accessID, nil
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func newTestService(t *testing.T, repo *stubUserRepo, sessions *stubSessions) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      config.JWTConfig{Secret: "secret", Issuer: "tradehub-test", ExpirationMinutes: 15},
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestRegisterCreatesUser(t *testing.T) {
	t.Parallel()
	repo := &stubUserRepo{}
	svc := newTestService(t, repo, &stubSessions{})

	dto, err := svc.Register(context.Background(), RegisterRequest{
		Username: "Ada",
		Password: "correct-horse",
		Role:     enums.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if dto.Username != "ada" {
		t.Fatalf("expected normalized username ada, got %s", dto.Username)
	}
	if dto.Role != enums.RoleCustomer {
		t.Fatalf("expected customer role, got %s", dto.Role)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one create, got %d", len(repo.created))
	}
	if repo.created[0].PasswordHash == "correct-horse" {
		t.Fatal("password stored in cleartext")
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	t.Parallel()
	repo := &stubUserRepo{byUsername: map[string]*models.User{
		"ada": {ID: uuid.New(), Username: "ada"},
	}}
	svc := newTestService(t, repo, &stubSessions{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "ada",
		Password: "correct-horse",
		Role:     enums.RoleVendor,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, &stubUserRepo{}, &stubSessions{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "ada",
		Password: "correct-horse",
		Role:     enums.Role("admin"),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginMintsTokenAndSession(t *testing.T) {
	t.Parallel()
	hash, err := security.HashPassword("correct-horse", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	userID := uuid.New()
	repo := &stubUserRepo{byUsername: map[string]*models.User{
		"ada": {ID: userID, Username: "ada", PasswordHash: hash, Role: enums.RoleCustomer},
	}}
	sessions := &stubSessions{}
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "Ada", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected tokens in response")
	}
	if resp.User == nil || resp.User.ID != userID {
		t.Fatalf("unexpected user payload: %#v", resp.User)
	}
	if len(sessions.generated) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions.generated))
	}
	if repo.lastLogin == nil || *repo.lastLogin != userID {
		t.Fatal("expected last login update")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()
	hash, err := security.HashPassword("correct-horse", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := &stubUserRepo{byUsername: map[string]*models.User{
		"ada": {ID: uuid.New(), Username: "ada", PasswordHash: hash, Role: enums.RoleCustomer},
	}}
	svc := newTestService(t, repo, &stubSessions{})

	_, err = svc.Login(context.Background(), LoginRequest{Username: "ada", Password: "wrong"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, &stubUserRepo{}, &stubSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "whatever"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()
	sessions := &stubSessions{}
	svc := newTestService(t, &stubUserRepo{}, sessions)

	if err := svc.Logout(context.Background(), "access-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-1" {
		t.Fatalf("expected revoked access-1, got %v", sessions.revoked)
	}
}
