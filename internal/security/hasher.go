// Package security provides one-way password hashing.
package security

import "golang.org/x/crypto/bcrypt"

// bcrypt silently ignores input past 72 bytes; longer secrets are truncated
// up front so that Hash and Check always agree on what was hashed.
const maxSecretLen = 72

const bcryptCost = 12

// Hasher hashes and verifies passwords. The interface keeps the auth flow
// testable with a cheap fake instead of paying bcrypt cost in every test.
type Hasher interface {
	Hash(password string) (string, error)
	Check(password, digest string) bool
}

type bcryptHasher struct{}

func NewHasher() Hasher { return bcryptHasher{} }

func (bcryptHasher) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword(truncate(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Check reports whether password matches digest. Malformed digests simply
// fail verification.
func (bcryptHasher) Check(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), truncate(password)) == nil
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxSecretLen {
		b = b[:maxSecretLen]
	}
	return b
}
