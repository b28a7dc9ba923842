// Package jwtx issues and verifies the signed bearer tokens that carry
// identity between requests. Tokens are symmetric HMAC-SHA256 (HS256):
// this is a single-service deployment, so there is no key distribution
// problem to solve and no reason to pay for asymmetric signatures.
package jwtx

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aussiebroadwan/miniblog/pkg/idx"
)

// DefaultAccessTokenTTL is the default access token lifetime when the
// deployment doesn't configure one.
const DefaultAccessTokenTTL = 60 * time.Minute

// Claims are the access-token claims. Subject is the decimal user id;
// username and email ride along so the boundary can build an actor
// without a store round trip.
type Claims struct {
	jwt.RegisteredClaims

	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// NewAccessClaims builds the claim set for a freshly authenticated user.
// The jti is a fresh ULID per call so every issued token is unique even
// for back-to-back logins.
func NewAccessClaims(
	userID int64,
	username, email string,
	ttl time.Duration,
	issuer, audience string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.New().String(),
		},
		Username: username,
		Email:    email,
	}
}

// UserID parses the subject claim back into a numeric user id.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrMalformed
	}
	return id, nil
}

// ValidateIssuer checks the iss claim against the configured issuer.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateAudience checks that the configured audience is present in aud.
func (c *Claims) ValidateAudience(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	for _, aud := range c.Audience {
		if aud == expected {
			return nil
		}
	}
	return ErrAudience
}

// ValidateExpiry enforces the expiry claim with zero leeway. A token is
// valid strictly while now < exp: at the expiry instant itself it is
// already expired, which makes a ttl of zero produce a token that is
// never accepted. Predictable beats forgiving here.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrMalformed
	}
	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}
