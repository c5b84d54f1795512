package stores_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	gh "github.com/gatehouse/gatehouse"
	"github.com/gatehouse/gatehouse/stores"
	"github.com/gatehouse/gatehouse/stores/storetest"
)

func TestMemUserStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) gh.UserStore {
		return stores.NewMemUserStore()
	})
}

func TestMemUserStoreConcurrentSignups(t *testing.T) {
	store := stores.NewMemUserStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.CreateUser(ctx, "bob", "digest")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, gh.ErrDuplicateUsername) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("expected exactly one winning sign-up, got %d", succeeded)
	}
}

func TestMemUserStoreReturnsCopies(t *testing.T) {
	store := stores.NewMemUserStore()
	ctx := context.Background()

	created, err := store.CreateUser(ctx, "alice", "digest")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	created.PasswordHash = "mutated"

	fetched, err := store.GetUserById(ctx, created.Id)
	if err != nil {
		t.Fatalf("GetUserById failed: %v", err)
	}
	if fetched.PasswordHash != "digest" {
		t.Error("mutating a returned record must not change the stored one")
	}
}
