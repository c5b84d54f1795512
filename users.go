package gatehouse

import (
	"context"
	"errors"
	"time"
)

// User is the single persisted entity: an account that can sign in with a
// username and password.  The password itself is never stored - only the
// salted bcrypt digest produced by a PasswordHasher.
type User struct {
	Id           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

var (
	// ErrUserNotFound is the soft failure for lookups.  Callers map it to an
	// authentication failure - it is never an HTTP error by itself.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUsername is returned by CreateUser when the username is
	// already reserved by another account.
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrStoreUnavailable wraps connection/query level failures of the
	// underlying database.  Stores wrap (not replace) the cause so the
	// original error stays visible in logs.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)

// UserStore is the credential store: a persistent mapping from username to a
// user record.  Implementations must be safe for concurrent use - two login
// attempts for the same user are independent reads, and two sign-ups may race
// (the loser of the race gets ErrDuplicateUsername).
type UserStore interface {
	// GetUserByUsername does an exact-match lookup, case-sensitivity as stored.
	// Returns ErrUserNotFound when no record matches.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// GetUserById retrieves a user by their ID.  Used to rehydrate a session
	// into a full identity on each request.
	GetUserById(ctx context.Context, id string) (*User, error)

	// CreateUser inserts a new record, assigns an id and returns the stored
	// record.  Returns ErrDuplicateUsername if the username is taken.
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
}
