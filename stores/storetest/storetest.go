// Package storetest is the conformance suite every UserStore backend is run
// against.  It lives in its own package so backend tests in other packages
// can share it.
package storetest

import (
	"context"
	"errors"
	"testing"

	gh "github.com/gatehouse/gatehouse"
)

// Factory creates a fresh empty store for one subtest
type Factory func(t *testing.T) gh.UserStore

// Run exercises the behavior shared by all UserStore backends
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("create and lookup", func(t *testing.T) {
		store := newStore(t)

		created, err := store.CreateUser(ctx, "alice", "digest-1")
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if created.Id == "" {
			t.Error("store did not assign an id")
		}
		if created.Username != "alice" || created.PasswordHash != "digest-1" {
			t.Errorf("stored record mismatch: %+v", created)
		}

		byName, err := store.GetUserByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if byName.Id != created.Id {
			t.Errorf("expected id %q, got %q", created.Id, byName.Id)
		}

		byId, err := store.GetUserById(ctx, created.Id)
		if err != nil {
			t.Fatalf("GetUserById failed: %v", err)
		}
		if byId.Username != "alice" {
			t.Errorf("expected alice, got %q", byId.Username)
		}
	})

	t.Run("lookups fail softly", func(t *testing.T) {
		store := newStore(t)

		if _, err := store.GetUserByUsername(ctx, "nobody"); !errors.Is(err, gh.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
		if _, err := store.GetUserById(ctx, "no-such-id"); !errors.Is(err, gh.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("exact match lookup", func(t *testing.T) {
		store := newStore(t)

		if _, err := store.CreateUser(ctx, "Bob", "digest-1"); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		// Lookup is case-sensitive as stored even though uniqueness is not
		if _, err := store.GetUserByUsername(ctx, "bob"); !errors.Is(err, gh.ErrUserNotFound) {
			t.Errorf("expected case-mismatched lookup to miss, got %v", err)
		}
		if _, err := store.GetUserByUsername(ctx, "Bob"); err != nil {
			t.Errorf("expected exact lookup to hit, got %v", err)
		}
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		store := newStore(t)

		if _, err := store.CreateUser(ctx, "bob", "digest-1"); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if _, err := store.CreateUser(ctx, "bob", "digest-2"); !errors.Is(err, gh.ErrDuplicateUsername) {
			t.Errorf("expected ErrDuplicateUsername, got %v", err)
		}
		// Uniqueness is case-insensitive
		if _, err := store.CreateUser(ctx, "BOB", "digest-3"); !errors.Is(err, gh.ErrDuplicateUsername) {
			t.Errorf("expected ErrDuplicateUsername for case variant, got %v", err)
		}
	})
}
