// Package cryptox holds the credential-hashing primitives for the blog
// service. Hashes are bcrypt: salted per call, adaptive cost, and fully
// self-describing, so verification needs nothing beyond the plaintext and
// the stored hash itself.
package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for new hashes. Existing hashes
// carry their own cost, so this can be raised later without invalidating
// stored credentials.
const Cost = bcrypt.DefaultCost

var (
	// ErrPasswordMismatch reports a verification failure against a
	// well-formed stored hash.
	ErrPasswordMismatch = errors.New("cryptox: password does not match")

	// ErrMalformedHash reports a stored hash that bcrypt cannot decode.
	ErrMalformedHash = errors.New("cryptox: malformed password hash")
)

// HashPassword hashes a plaintext password. Two calls with the same input
// produce different outputs because bcrypt salts per call.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt
// hash. It returns nil on match, ErrPasswordMismatch on a clean mismatch
// and ErrMalformedHash when the stored value isn't a bcrypt hash at all.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return ErrMalformedHash
	}
}
