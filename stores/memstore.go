package stores

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	gh "github.com/gatehouse/gatehouse"
)

// MemUserStore keeps users in memory.  It is the substitutable stand-in for
// the Datastore-backed store in tests and local development.
type MemUserStore struct {
	mu         sync.RWMutex
	byId       map[string]*gh.User
	byUsername map[string]string // normalized username -> user id
}

// NewMemUserStore creates an empty in-memory UserStore
func NewMemUserStore() *MemUserStore {
	return &MemUserStore{
		byId:       make(map[string]*gh.User),
		byUsername: make(map[string]string),
	}
}

// normalizeUsername converts a username to lowercase for uniqueness checks
func normalizeUsername(username string) string {
	return strings.ToLower(username)
}

func (s *MemUserStore) CreateUser(ctx context.Context, username, passwordHash string) (*gh.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := normalizeUsername(username)
	if _, taken := s.byUsername[normalized]; taken {
		return nil, gh.ErrDuplicateUsername
	}

	user := &gh.User{
		Id:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.byId[user.Id] = user
	s.byUsername[normalized] = user.Id

	out := *user
	return &out, nil
}

func (s *MemUserStore) GetUserById(ctx context.Context, id string) (*gh.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byId[id]
	if !ok {
		return nil, gh.ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (s *MemUserStore) GetUserByUsername(ctx context.Context, username string) (*gh.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Lookup is exact-match on the username as stored.  The normalized map is
	// only an index; a case mismatch is still "not found".
	id, ok := s.byUsername[normalizeUsername(username)]
	if !ok {
		return nil, gh.ErrUserNotFound
	}
	user := s.byId[id]
	if user == nil || user.Username != username {
		return nil, gh.ErrUserNotFound
	}
	out := *user
	return &out, nil
}
