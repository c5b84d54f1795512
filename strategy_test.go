package gatehouse_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	gh "github.com/gatehouse/gatehouse"
	"github.com/gatehouse/gatehouse/stores"
)

// failingStore simulates a store whose underlying connection is down
type failingStore struct{}

func (s *failingStore) GetUserByUsername(ctx context.Context, username string) (*gh.User, error) {
	return nil, fmt.Errorf("%w: connection refused", gh.ErrStoreUnavailable)
}

func (s *failingStore) GetUserById(ctx context.Context, id string) (*gh.User, error) {
	return nil, fmt.Errorf("%w: connection refused", gh.ErrStoreUnavailable)
}

func (s *failingStore) CreateUser(ctx context.Context, username, passwordHash string) (*gh.User, error) {
	return nil, fmt.Errorf("%w: connection refused", gh.ErrStoreUnavailable)
}

func setupStrategy(t *testing.T) (*gh.LocalStrategy, *stores.MemUserStore) {
	t.Helper()
	users := stores.NewMemUserStore()
	hasher := &gh.BcryptHasher{Cost: 4}

	digest, err := hasher.Hash("hunter2")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if _, err := users.CreateUser(context.Background(), "alice", digest); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	return &gh.LocalStrategy{Users: users, Hasher: hasher}, users
}

func TestAuthenticateTerminalOutcomes(t *testing.T) {
	strategy, _ := setupStrategy(t)

	tests := []struct {
		name     string
		username string
		password string
		wantCode string // empty means success expected
	}{
		{"correct credentials", "alice", "hunter2", ""},
		{"wrong password", "alice", "wrongpass", gh.ErrCodeIncorrectPassword},
		{"unknown username", "mallory", "hunter2", gh.ErrCodeIncorrectUsername},
		{"case mismatch is unknown username", "Alice", "hunter2", gh.ErrCodeIncorrectUsername},
		{"empty password", "alice", "", gh.ErrCodeIncorrectPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := strategy.Authenticate(context.Background(), tt.username, tt.password)

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				if user == nil || user.Username != tt.username {
					t.Fatalf("expected user %q, got %+v", tt.username, user)
				}
				return
			}

			if user != nil {
				t.Fatalf("expected no user, got %+v", user)
			}
			var authErr *gh.AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected *AuthError, got %v", err)
			}
			if authErr.Code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, authErr.Code)
			}
		})
	}
}

func TestAuthenticatePropagatesStoreErrors(t *testing.T) {
	strategy := gh.NewLocalStrategy(&failingStore{})

	user, err := strategy.Authenticate(context.Background(), "alice", "hunter2")
	if user != nil {
		t.Fatalf("expected no user, got %+v", user)
	}
	if !errors.Is(err, gh.ErrStoreUnavailable) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
	var authErr *gh.AuthError
	if errors.As(err, &authErr) {
		t.Fatalf("store error must not be masked as an auth failure, got %v", authErr)
	}
}
