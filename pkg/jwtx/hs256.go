package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification reason codes. The boundary maps all of these to 401; they
// are distinct so logs and tests can tell why a token was rejected.
var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrBadSignature = errors.New("jwtx: invalid signature")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
)

// Verifier validates a compact token string and gives back the claims if
// it's legit.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// HS256 signs and verifies tokens with a shared symmetric secret. The
// same value both issues and verifies, so one instance serves the whole
// process.
type HS256 struct {
	secret   []byte
	issuer   string
	audience string

	// now is swappable for expiry boundary tests.
	now func() time.Time
}

// NewHS256 builds a signer/verifier for the given secret and the issuer
// and audience values every accepted token must carry.
func NewHS256(secret []byte, issuer, audience string) *HS256 {
	return &HS256{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Sign serializes and signs the claims into a compact token string.
func (h *HS256) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}

// Issue mints a signed access token for the user with the configured
// issuer and audience. It returns the compact token and its expiry.
func (h *HS256) Issue(userID int64, username, email string, ttl time.Duration) (string, time.Time, error) {
	now := h.now()
	claims := NewAccessClaims(userID, username, email, ttl, h.issuer, h.audience, now)
	token, err := h.Sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, claims.ExpiresAt.Time, nil
}

// Verify parses the token and accepts it iff the signature checks out
// against the secret, iss and aud match the configured values, and the
// token has not reached its expiry instant. Any failure comes back as
// one of the package's reason-code errors.
func (h *HS256) Verify(tokenStr string) (*Claims, error) {
	// Claims validation is done by hand below so expiry gets zero leeway
	// and mismatches map to precise reason codes.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrBadSignature
		default:
			return nil, ErrMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, ErrMalformed
	}

	if err := claims.ValidateIssuer(h.issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateAudience(h.audience); err != nil {
		return nil, err
	}
	if err := claims.ValidateExpiry(h.now()); err != nil {
		return nil, err
	}

	return claims, nil
}
