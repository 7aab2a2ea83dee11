package cryptography

import (
	"crypto/sha256"
	"crypto/subtle"
)

var CryptoHahser Hasher = newArgonHasher()

// SecureCompare compares two secrets in constant time. Both sides are hashed
// first so the comparison does not leak the length of the expected value.
func SecureCompare(given string, expected string) bool {
	if expected == "" {
		return false
	}
	a := sha256.Sum256([]byte(given))
	b := sha256.Sum256([]byte(expected))
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
