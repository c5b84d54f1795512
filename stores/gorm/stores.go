//go:build !wasm
// +build !wasm

package gorm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	gh "github.com/gatehouse/gatehouse"
)

// AutoMigrate runs database migrations for the gatehouse tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserModel{})
}

// UserStore implements gatehouse.UserStore using GORM
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	// Constraint violations must surface as gorm.ErrDuplicatedKey rather than
	// raw driver errors, so duplicate sign-ups that slip past the lookup below
	// still map to ErrDuplicateUsername.
	db.Config.TranslateError = true
	return &UserStore{db: db}
}

// normalizeUsername converts the username to lowercase for the reservation key
func normalizeUsername(username string) string {
	return strings.ToLower(username)
}

func (s *UserStore) CreateUser(ctx context.Context, username, passwordHash string) (*gh.User, error) {
	key := normalizeUsername(username)

	var existing UserModel
	err := s.db.WithContext(ctx).Select("id").First(&existing, "username_key = ?", key).Error
	if err == nil {
		return nil, gh.ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", gh.ErrStoreUnavailable, err)
	}

	model := &UserModel{
		ID:           uuid.NewString(),
		Username:     username,
		UsernameKey:  key,
		PasswordHash: passwordHash,
	}
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		// Two racing sign-ups can both pass the lookup; the unique index on
		// username_key decides the winner.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, gh.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("%w: %v", gh.ErrStoreUnavailable, err)
	}
	return model.ToUser(), nil
}

func (s *UserStore) GetUserById(ctx context.Context, userId string) (*gh.User, error) {
	var model UserModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", userId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gh.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", gh.ErrStoreUnavailable, err)
	}
	return model.ToUser(), nil
}

func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*gh.User, error) {
	var model UserModel
	if err := s.db.WithContext(ctx).First(&model, "username_key = ?", normalizeUsername(username)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gh.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", gh.ErrStoreUnavailable, err)
	}
	// Lookup is exact-match on the username as stored.  Matching on the
	// reservation key (rather than a username = ? clause) keeps this
	// independent of the database's collation.
	if model.Username != username {
		return nil, gh.ErrUserNotFound
	}
	return model.ToUser(), nil
}
