package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/miniblog/pkg/httpx"
	"github.com/aussiebroadwan/miniblog/pkg/jwtx"
)

func TestAuthnMiddleware(t *testing.T) {
	t.Parallel()

	signer := jwtx.NewHS256([]byte("test-secret-test-secret-test-sec"), "miniblog", "miniblog-api")

	handler := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := httpx.ClaimsFromContext(r.Context())
			require.NotNil(t, claims)
			require.Equal(t, "9", claims.Subject)
			w.WriteHeader(http.StatusOK)
		}),
		httpx.AuthnMiddleware(signer),
	)

	token, err := signer.Sign(jwtx.NewAccessClaims(
		9, "carol", "carol@example.com", time.Hour, "miniblog", "miniblog-api", time.Now().UTC(),
	))
	require.NoError(t, err)

	t.Run("accepts valid bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("rejects non-bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
