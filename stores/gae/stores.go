//go:build !wasm
// +build !wasm

package gae

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	gh "github.com/gatehouse/gatehouse"
)

// Kind constants for Datastore entities
const (
	KindUser     = "User"
	KindUsername = "Username"
)

// UserStore implements gatehouse.UserStore using Google Cloud Datastore
type UserStore struct {
	client    *datastore.Client
	namespace string
}

// NewUserStore creates a new Datastore-backed UserStore
func NewUserStore(client *datastore.Client, namespace string) *UserStore {
	return &UserStore{
		client:    client,
		namespace: namespace,
	}
}

func (s *UserStore) namespacedKey(kind, name string) *datastore.Key {
	key := datastore.NameKey(kind, name, nil)
	key.Namespace = s.namespace
	return key
}

// normalizeUsername converts the username to lowercase for the reservation key
func (s *UserStore) normalizeUsername(username string) string {
	return strings.ToLower(username)
}

func (s *UserStore) CreateUser(ctx context.Context, username, passwordHash string) (*gh.User, error) {
	userId := uuid.NewString()
	userKey := s.namespacedKey(KindUser, userId)
	usernameKey := s.namespacedKey(KindUsername, s.normalizeUsername(username))
	now := time.Now()

	_, err := s.client.RunInTransaction(ctx, func(tx *datastore.Transaction) error {
		var existing UsernameEntity
		err := tx.Get(usernameKey, &existing)
		if err == nil {
			return gh.ErrDuplicateUsername
		}
		if err != datastore.ErrNoSuchEntity {
			return err
		}

		// Reservation and user record land (or fail) together
		reservation := &UsernameEntity{
			Key:       usernameKey,
			Username:  username,
			UserId:    userId,
			CreatedAt: now,
		}
		if _, err := tx.Put(usernameKey, reservation); err != nil {
			return err
		}

		entity := &UserEntity{
			Key:          userKey,
			Username:     username,
			PasswordHash: passwordHash,
			CreatedAt:    now,
		}
		_, err = tx.Put(userKey, entity)
		return err
	})
	if err == gh.ErrDuplicateUsername {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gh.ErrStoreUnavailable, err)
	}

	return &gh.User{
		Id:           userId,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

func (s *UserStore) GetUserById(ctx context.Context, userId string) (*gh.User, error) {
	key := s.namespacedKey(KindUser, userId)
	var entity UserEntity
	if err := s.client.Get(ctx, key, &entity); err != nil {
		if err == datastore.ErrNoSuchEntity {
			return nil, gh.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", gh.ErrStoreUnavailable, err)
	}
	entity.Key = key
	return entity.ToUser(), nil
}

func (s *UserStore) GetUserByUsername(ctx context.Context, username string) (*gh.User, error) {
	// Exact-match query on the username as stored, not the normalized
	// reservation key
	query := datastore.NewQuery(KindUser).
		FilterField("username", "=", username).
		Limit(1)
	if s.namespace != "" {
		query = query.Namespace(s.namespace)
	}

	it := s.client.Run(ctx, query)
	var entity UserEntity
	key, err := it.Next(&entity)
	if err == iterator.Done {
		return nil, gh.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gh.ErrStoreUnavailable, err)
	}
	entity.Key = key
	return entity.ToUser(), nil
}
