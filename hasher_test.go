package gatehouse_test

import (
	"fmt"
	"sync"
	"testing"

	gh "github.com/gatehouse/gatehouse"
)

func TestHashNeverEqualsPlaintext(t *testing.T) {
	hasher := &gh.BcryptHasher{}

	for _, plaintext := range []string{"hunter2", "password123", "a"} {
		digest, err := hasher.Hash(plaintext)
		if err != nil {
			t.Fatalf("Hash(%q) returned error: %v", plaintext, err)
		}
		if digest == plaintext {
			t.Errorf("digest equals plaintext for %q", plaintext)
		}
		if digest == "" {
			t.Errorf("empty digest for %q", plaintext)
		}
	}
}

func TestVerify(t *testing.T) {
	hasher := &gh.BcryptHasher{}
	digest, err := hasher.Hash("hunter2")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if !hasher.Verify("hunter2", digest) {
		t.Error("Verify rejected the correct password")
	}
	if hasher.Verify("wrongpass", digest) {
		t.Error("Verify accepted a wrong password")
	}
	if hasher.Verify("", digest) {
		t.Error("Verify accepted an empty password")
	}
	// A garbage digest is a mismatch, not a panic or error
	if hasher.Verify("hunter2", "not-a-bcrypt-digest") {
		t.Error("Verify accepted a malformed digest")
	}
}

func TestHashIsSalted(t *testing.T) {
	hasher := &gh.BcryptHasher{}
	first, err := hasher.Hash("hunter2")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := hasher.Hash("hunter2")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical - no per-record salt?")
	}
}

func TestHasherConcurrentUse(t *testing.T) {
	// Low cost keeps the concurrent hashing quick
	hasher := &gh.BcryptHasher{Cost: 4}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			password := fmt.Sprintf("password-%d", i)
			digest, err := hasher.Hash(password)
			if err != nil {
				t.Errorf("Hash returned error: %v", err)
				return
			}
			if !hasher.Verify(password, digest) {
				t.Errorf("Verify rejected password %d", i)
			}
		}(i)
	}
	wg.Wait()
}
