package server

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashEditKey derives the stored form of an edit key. The plaintext key
// is a bearer secret: it exists in a request body for the duration of
// one call and is never persisted or returned.
func HashEditKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// editKeyMatches compares a supplied key against a stored hash in
// constant time. An empty key can never match: it hashes to a fixed
// value no stored record carries, and the comparison still runs so the
// timing is uniform.
func editKeyMatches(key, storedHash string) bool {
	supplied := HashEditKey(key)
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(storedHash)) == 1
}
