package blog_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoginRateLimit verifies the strict per-IP limit on the credential
// endpoints: the bucket holds 5 requests, the 6th is turned away with a
// Retry-After header.
func TestLoginRateLimit(t *testing.T) {
	baseURL := setupServer(t)
	register(t, baseURL, "alice")

	body := map[string]string{"username": "alice", "password": "wrong-password"}

	for i := 0; i < 5; i++ {
		status := doJSON(t, http.MethodPost, baseURL+"/api/auth/login", "", body, nil)
		require.Equal(t, http.StatusUnauthorized, status)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/auth/login", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Retry-After"))
}
