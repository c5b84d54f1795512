// Package redisstore provides a Redis-backed session store for the
// scs session manager, so session state survives process restarts and can be
// shared between instances.  The in-memory default remains fine for tests
// and single-process deployments.
package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPrefix is prepended to session tokens to namespace the keys
const DefaultPrefix = "scs:session:"

// RedisStore implements scs.Store and scs.CtxStore over a go-redis client
type RedisStore struct {
	client *redis.Client
	prefix string
}

// New returns a RedisStore using the DefaultPrefix
func New(client *redis.Client) *RedisStore {
	return NewWithPrefix(client, DefaultPrefix)
}

// NewWithPrefix returns a RedisStore with a custom key prefix, for when the
// same Redis instance backs more than one application.
func NewWithPrefix(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// FindCtx returns the data for a given session token.  A missing or expired
// token is (nil, false, nil), not an error.
func (s *RedisStore) FindCtx(ctx context.Context, token string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// CommitCtx adds or updates a session token with the given data and expiry
func (s *RedisStore) CommitCtx(ctx context.Context, token string, b []byte, expiry time.Time) error {
	return s.client.Set(ctx, s.prefix+token, b, time.Until(expiry)).Err()
}

// DeleteCtx removes a session token.  Deleting an absent token is a no-op.
func (s *RedisStore) DeleteCtx(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.prefix+token).Err()
}

func (s *RedisStore) Find(token string) ([]byte, bool, error) {
	return s.FindCtx(context.Background(), token)
}

func (s *RedisStore) Commit(token string, b []byte, expiry time.Time) error {
	return s.CommitCtx(context.Background(), token, b, expiry)
}

func (s *RedisStore) Delete(token string) error {
	return s.DeleteCtx(context.Background(), token)
}
