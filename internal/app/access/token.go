package access

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// tokenBytes is the entropy of an invite token: 32 bytes = 256 bits,
// comfortably past guessing range.
const tokenBytes = 32

// newInviteToken generates a fresh invite token and its storage hash.
// The plaintext is returned to the issuer exactly once; only the hash is
// ever persisted.
func newInviteToken() (plaintext, hash string, err error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate invite token: %w", err)
	}
	plaintext = base64.RawURLEncoding.EncodeToString(b)
	return plaintext, HashToken(plaintext), nil
}

// HashToken returns the hex BLAKE2b-256 digest of an invite token. The
// digest is deterministic so redemption can look the category up by an
// equality index on the stored hash; the store never holds plaintext.
func HashToken(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
