//go:build !wasm
// +build !wasm

package gae

import (
	"time"

	"cloud.google.com/go/datastore"

	gh "github.com/gatehouse/gatehouse"
)

// UserEntity is the Datastore entity for users
type UserEntity struct {
	Key          *datastore.Key `datastore:"__key__"`
	Username     string         `datastore:"username"`
	PasswordHash string         `datastore:"password_hash,noindex"`
	CreatedAt    time.Time      `datastore:"created_at"`
}

func (e *UserEntity) ToUser() *gh.User {
	return &gh.User{
		Id:           e.Key.Name,
		Username:     e.Username,
		PasswordHash: e.PasswordHash,
		CreatedAt:    e.CreatedAt,
	}
}

// UsernameEntity is the Datastore entity reserving a username.
// Key: lowercased username, so the transactional existence check is a
// straight key lookup.
type UsernameEntity struct {
	Key       *datastore.Key `datastore:"__key__"`
	Username  string         `datastore:"username"` // Original case-preserved
	UserId    string         `datastore:"user_id"`
	CreatedAt time.Time      `datastore:"created_at"`
}
