package stores_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	gh "github.com/gatehouse/gatehouse"
	"github.com/gatehouse/gatehouse/stores"
	"github.com/gatehouse/gatehouse/stores/storetest"
)

func TestFSUserStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) gh.UserStore {
		return stores.NewFSUserStore(t.TempDir())
	})
}

func TestFSUserStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	created, err := stores.NewFSUserStore(dir).CreateUser(ctx, "alice", "digest")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	// A fresh store over the same directory sees the same records
	reopened := stores.NewFSUserStore(dir)
	user, err := reopened.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername after reopen failed: %v", err)
	}
	if user.Id != created.Id || user.PasswordHash != "digest" {
		t.Errorf("record mismatch after reopen: %+v", user)
	}
}

func TestFSUserStoreReportsStorageErrors(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	// A regular file where the usernames directory belongs makes the
	// duplicate check fail with something other than "does not exist".  That
	// must never read as "name free".
	if err := os.WriteFile(filepath.Join(dir, "usernames"), []byte("x"), 0644); err != nil {
		t.Fatalf("setting up blocker: %v", err)
	}

	_, err := stores.NewFSUserStore(dir).CreateUser(ctx, "alice", "digest")
	if !errors.Is(err, gh.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestFSUserStoreFailedSignupLeavesNoReservation(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	store := stores.NewFSUserStore(dir)

	// Block the users directory so the sign-up fails partway
	blocker := filepath.Join(dir, "users")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("setting up blocker: %v", err)
	}
	if _, err := store.CreateUser(ctx, "alice", "digest"); !errors.Is(err, gh.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}

	// The failed attempt must not have reserved the name
	if err := os.Remove(blocker); err != nil {
		t.Fatalf("removing blocker: %v", err)
	}
	if _, err := store.CreateUser(ctx, "alice", "digest"); err != nil {
		t.Errorf("expected the name to still be available, got %v", err)
	}
}
