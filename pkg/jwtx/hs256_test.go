package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "miniblog"
	testAudience = "miniblog-api"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestHS256() *HS256 {
	return NewHS256(testSecret, testIssuer, testAudience)
}

func mintToken(t *testing.T, h *HS256, ttl time.Duration, issuer, audience string) string {
	t.Helper()
	claims := NewAccessClaims(42, "alice", "alice@example.com", ttl, issuer, audience, time.Now().UTC())
	token, err := h.Sign(claims)
	require.NoError(t, err)
	return token
}

func TestHS256RoundTrip(t *testing.T) {
	t.Parallel()

	h := newTestHS256()
	token := mintToken(t, h, time.Hour, testIssuer, testAudience)

	claims, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "alice@example.com", claims.Email)
	require.NotEmpty(t, claims.ID)

	id, err := claims.UserID()
	require.NoError(t, err)
	require.EqualValues(t, 42, id)
}

func TestHS256FreshJTIPerToken(t *testing.T) {
	t.Parallel()

	h := newTestHS256()
	first, err := h.Verify(mintToken(t, h, time.Hour, testIssuer, testAudience))
	require.NoError(t, err)
	second, err := h.Verify(mintToken(t, h, time.Hour, testIssuer, testAudience))
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)
}

func TestHS256ZeroTTLIsBornExpired(t *testing.T) {
	t.Parallel()

	h := newTestHS256()
	token := mintToken(t, h, 0, testIssuer, testAudience)

	_, err := h.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestHS256ExpiryIsExact(t *testing.T) {
	t.Parallel()

	h := newTestHS256()
	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	claims := NewAccessClaims(7, "bob", "bob@example.com", time.Minute, testIssuer, testAudience, issued)
	token, err := h.Sign(claims)
	require.NoError(t, err)

	// One second before expiry: accepted.
	h.now = func() time.Time { return issued.Add(59 * time.Second) }
	_, err = h.Verify(token)
	require.NoError(t, err)

	// At the expiry instant: rejected. No leeway window.
	h.now = func() time.Time { return issued.Add(time.Minute) }
	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestHS256RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	other := NewHS256([]byte("ffffffffffffffffffffffffffffffff"), testIssuer, testAudience)
	token := mintToken(t, other, time.Hour, testIssuer, testAudience)

	_, err := newTestHS256().Verify(token)
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestHS256RejectsTamperedSignature(t *testing.T) {
	t.Parallel()

	h := newTestHS256()
	token := mintToken(t, h, time.Hour, testIssuer, testAudience)

	// Flip the last signature character.
	last := token[len(token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	_, err := h.Verify(tampered)
	require.ErrorIs(t, err, ErrBadSignature)
}

func TestHS256RejectsAudienceMismatch(t *testing.T) {
	t.Parallel()

	h := newTestHS256()
	token := mintToken(t, h, time.Hour, testIssuer, "some-other-api")

	_, err := h.Verify(token)
	require.ErrorIs(t, err, ErrAudience)
}

func TestHS256RejectsIssuerMismatch(t *testing.T) {
	t.Parallel()

	h := newTestHS256()
	token := mintToken(t, h, time.Hour, "someone-else", testAudience)

	_, err := h.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestHS256RejectsMalformedTokens(t *testing.T) {
	t.Parallel()

	h := newTestHS256()

	for _, token := range []string{
		"",
		"not-a-jwt",
		"a.b",
		strings.Repeat("x", 512),
	} {
		_, err := h.Verify(token)
		require.ErrorIs(t, err, ErrMalformed, "token %q", token)
	}
}
