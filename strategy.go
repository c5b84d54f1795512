package gatehouse

import (
	"context"
	"errors"
)

// LocalStrategy authenticates a username/password pair against a UserStore.
//
// Every attempt reaches exactly one terminal outcome:
//   - the authenticated *User,
//   - an *AuthError naming the check that failed (unknown username or wrong
//     password), or
//   - a store error, propagated to the caller as-is rather than swallowed.
type LocalStrategy struct {
	Users  UserStore
	Hasher PasswordHasher
}

// NewLocalStrategy creates a strategy over the given store with the default
// bcrypt hasher.
func NewLocalStrategy(users UserStore) *LocalStrategy {
	return &LocalStrategy{Users: users, Hasher: &BcryptHasher{}}
}

func (s *LocalStrategy) hasher() PasswordHasher {
	if s.Hasher != nil {
		return s.Hasher
	}
	return &BcryptHasher{}
}

// Authenticate looks the user up by username and verifies the password via
// the hasher.
func (s *LocalStrategy) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.Users.GetUserByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return nil, NewAuthError(ErrCodeIncorrectUsername, "Incorrect username", "username")
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher().Verify(password, user.PasswordHash) {
		return nil, NewAuthError(ErrCodeIncorrectPassword, "Incorrect password", "password")
	}
	return user, nil
}
