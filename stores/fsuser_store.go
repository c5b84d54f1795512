package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	gh "github.com/gatehouse/gatehouse"
)

// fsUsername is a username reservation stored as JSON.  The normalized
// (lowercase) username is the filename, so reserving a name is just an
// exclusive file create.
type fsUsername struct {
	Username  string    `json:"username"` // Original case-preserved
	UserId    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FSUserStore stores users as JSON files.
//
// # File Structure
//
//	{StoragePath}/
//	├── users/
//	│   └── {id}.json
//	└── usernames/
//	    └── {lowercased username}.json
//
// The store-level mutex serializes sign-ups within a process; the username
// reservation file keeps uniqueness across restarts.
type FSUserStore struct {
	StoragePath string

	mu sync.Mutex
}

// NewFSUserStore creates a filesystem-backed UserStore rooted at storagePath
func NewFSUserStore(storagePath string) *FSUserStore {
	return &FSUserStore{StoragePath: storagePath}
}

func (s *FSUserStore) userPath(id string) string {
	return filepath.Join(s.StoragePath, "users", id+".json")
}

func (s *FSUserStore) usernamePath(username string) string {
	return filepath.Join(s.StoragePath, "usernames", normalizeUsername(username)+".json")
}

func (s *FSUserStore) CreateUser(ctx context.Context, username, passwordHash string) (*gh.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.usernamePath(username)); err == nil {
		return nil, gh.ErrDuplicateUsername
	} else if !os.IsNotExist(err) {
		// Only a confirmed missing reservation means the name is free;
		// anything else (permissions, a bad storage path) is a store failure.
		return nil, fmt.Errorf("%w: %v", gh.ErrStoreUnavailable, err)
	}

	user := &gh.User{
		Id:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	userData, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return nil, err
	}
	reservation, err := json.MarshalIndent(&fsUsername{
		Username:  username,
		UserId:    user.Id,
		CreatedAt: user.CreatedAt,
	}, "", "  ")
	if err != nil {
		return nil, err
	}

	for _, path := range []string{s.userPath(user.Id), s.usernamePath(username)} {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("%w: %v", gh.ErrStoreUnavailable, err)
		}
	}
	// The reservation is the uniqueness anchor so it lands first.  If the user
	// record then fails to write, the reservation is rolled back instead of
	// leaving the name blocked with no account behind it.
	if err := writeAtomicFile(s.usernamePath(username), reservation); err != nil {
		return nil, fmt.Errorf("%w: %v", gh.ErrStoreUnavailable, err)
	}
	if err := writeAtomicFile(s.userPath(user.Id), userData); err != nil {
		os.Remove(s.usernamePath(username))
		return nil, fmt.Errorf("%w: %v", gh.ErrStoreUnavailable, err)
	}
	return user, nil
}

func (s *FSUserStore) GetUserById(ctx context.Context, id string) (*gh.User, error) {
	data, err := os.ReadFile(s.userPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gh.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", gh.ErrStoreUnavailable, err)
	}

	var user gh.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *FSUserStore) GetUserByUsername(ctx context.Context, username string) (*gh.User, error) {
	data, err := os.ReadFile(s.usernamePath(username))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gh.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", gh.ErrStoreUnavailable, err)
	}

	var reservation fsUsername
	if err := json.Unmarshal(data, &reservation); err != nil {
		return nil, err
	}
	// Exact-match semantics: the reservation file is found case-insensitively
	// but the stored username must match as submitted.
	if reservation.Username != username {
		return nil, gh.ErrUserNotFound
	}
	return s.GetUserById(ctx, reservation.UserId)
}
