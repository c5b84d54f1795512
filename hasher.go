package gatehouse

import "golang.org/x/crypto/bcrypt"

// DefaultHashCost is the bcrypt work factor used when none is configured.
const DefaultHashCost = 10

// PasswordHasher transforms plaintext passwords into storable digests and
// verifies plaintext guesses against stored digests.  Implementations must
// tolerate concurrent use for unrelated requests.
type PasswordHasher interface {
	// Hash produces a salted one-way digest of the plaintext.
	Hash(plaintext string) (string, error)

	// Verify recomputes using the salt embedded in the digest and compares.
	// Never errors on mismatch - just returns false.
	Verify(plaintext, digest string) bool
}

// BcryptHasher is the default PasswordHasher.  The zero value is ready to use
// with DefaultHashCost.
type BcryptHasher struct {
	Cost int
}

func (h *BcryptHasher) cost() int {
	if h.Cost > 0 {
		return h.Cost
	}
	return DefaultHashCost
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost())
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
