package token

import (
	"crypto/rand"
	"encoding/hex"
)

// Size is the number of random bytes in a payment-link token.
// Hex encoding doubles it to 64 characters on the wire.
const Size = 32

// New returns a high-entropy URL-safe token. Uniqueness relies on entropy
// alone; there is no persistence check for collisions.
func New() (string, error) {
	b := make([]byte, Size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
