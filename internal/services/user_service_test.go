package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"plan-tracker.com/plan-tracker/internal/auth"
	apperrors "plan-tracker.com/plan-tracker/internal/errors"
	repository "plan-tracker.com/plan-tracker/internal/repositories"
)

// mockTokenStore is a simple in-memory refresh token store for testing.
type mockTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{tokens: make(map[string]string)}
}

func (m *mockTokenStore) Save(ctx context.Context, token, userID string, validity time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = userID
	return nil
}

func (m *mockTokenStore) UserID(ctx context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.tokens[token]
	if !ok {
		return "", auth.ErrTokenNotFound
	}
	return userID, nil
}

func (m *mockTokenStore) Revoke(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}

func newUserServiceForTest(t *testing.T) (*UserService, *mockTokenStore) {
	t.Helper()
	db := setupTestDB(t)
	store := newMockTokenStore()
	svc := NewUserService(
		repository.NewUserRepository(db),
		store,
		[]byte("test-secret"),
		15*time.Minute,
		24*time.Hour,
	)
	return svc, store
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc, _ := newUserServiceForTest(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "ada@example.com", "Ada", "correct horse battery")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected user id to be set")
	}
	if user.PasswordHash == "correct horse battery" {
		t.Error("password must not be stored in clear")
	}

	pair, err := svc.Login(ctx, "ada@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("expected both tokens in the pair")
	}

	userID, err := auth.GetUserIDFromToken(pair.AccessToken, []byte("test-secret"))
	if err != nil {
		t.Fatalf("access token did not verify: %v", err)
	}
	if userID != user.ID {
		t.Errorf("token carries user %s, want %s", userID, user.ID)
	}
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	svc, _ := newUserServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ada@example.com", "Ada", "correct horse battery"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(ctx, "ada@example.com", "wrong"); err != apperrors.ErrInvalidCredentials {
		t.Errorf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "whatever"); err != apperrors.ErrInvalidCredentials {
		t.Errorf("expected invalid credentials for unknown email, got %v", err)
	}
}

func TestUserService_DuplicateEmail(t *testing.T) {
	svc, _ := newUserServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ada@example.com", "Ada", "correct horse battery"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register(ctx, "ada@example.com", "Imposter", "other password"); err != apperrors.ErrEmailTaken {
		t.Errorf("expected email taken, got %v", err)
	}
}

func TestUserService_RefreshRotatesToken(t *testing.T) {
	svc, store := newUserServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ada@example.com", "Ada", "correct horse battery"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, err := svc.Login(ctx, "ada@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	fresh, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if fresh.RefreshToken == pair.RefreshToken {
		t.Error("expected refresh to rotate the token")
	}

	// The old token was revoked by the rotation.
	if _, err := store.UserID(ctx, pair.RefreshToken); err != auth.ErrTokenNotFound {
		t.Errorf("expected old refresh token revoked, got %v", err)
	}
	if _, err := svc.Refresh(ctx, pair.RefreshToken); err != apperrors.ErrInvalidToken {
		t.Errorf("expected reuse of old token to fail, got %v", err)
	}
}

func TestUserService_Logout(t *testing.T) {
	svc, _ := newUserServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ada@example.com", "Ada", "correct horse battery"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, _ := svc.Login(ctx, "ada@example.com", "correct horse battery")

	if err := svc.Logout(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.Refresh(ctx, pair.RefreshToken); err != apperrors.ErrInvalidToken {
		t.Errorf("expected refresh after logout to fail, got %v", err)
	}
}
