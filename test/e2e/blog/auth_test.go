package blog_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthFlow(t *testing.T) {
	baseURL := setupServer(t)

	res := register(t, baseURL, "alice")
	require.Equal(t, "alice", res.User.Username)
	require.Equal(t, "alice@example.com", res.User.Email)
	require.Equal(t, "alice", res.User.DisplayName)

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		var errResp errorResponse
		status := doJSON(t, http.MethodPost, baseURL+"/api/auth/register", "", map[string]string{
			"username": "alice",
			"email":    "fresh@example.com",
			"password": "hunter22",
		}, &errResp)
		require.Equal(t, http.StatusConflict, status)
		require.Equal(t, http.StatusConflict, errResp.StatusCode)
		require.NotEmpty(t, errResp.TraceID)
	})

	t.Run("login returns a fresh token", func(t *testing.T) {
		var login authResult
		status := doJSON(t, http.MethodPost, baseURL+"/api/auth/login", "", map[string]string{
			"username": "alice",
			"password": "hunter22",
		}, &login)
		require.Equal(t, http.StatusOK, status)
		require.NotEmpty(t, login.Token)
		require.NotEqual(t, res.Token, login.Token)
	})

	t.Run("wrong password is a 401", func(t *testing.T) {
		status := doJSON(t, http.MethodPost, baseURL+"/api/auth/login", "", map[string]string{
			"username": "alice",
			"password": "wrong-password",
		}, nil)
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("me returns the authenticated account", func(t *testing.T) {
		var me struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
		}
		status := doJSON(t, http.MethodGet, baseURL+"/api/auth/me", res.Token, nil, &me)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, res.User.ID, me.ID)
		require.Equal(t, "alice", me.Username)
	})

	t.Run("me without a token is a 401", func(t *testing.T) {
		status := doJSON(t, http.MethodGet, baseURL+"/api/auth/me", "", nil, nil)
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("me with a garbage token is a 401", func(t *testing.T) {
		status := doJSON(t, http.MethodGet, baseURL+"/api/auth/me", "not.a.jwt", nil, nil)
		require.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestRegistrationValidation(t *testing.T) {
	baseURL := setupServer(t)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"short username", map[string]string{
			"username": "ab", "email": "ab@example.com", "password": "hunter22",
		}},
		{"bad email", map[string]string{
			"username": "bob", "email": "not-an-email", "password": "hunter22",
		}},
		{"short password", map[string]string{
			"username": "bob", "email": "bob@example.com", "password": "pw",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status := doJSON(t, http.MethodPost, baseURL+"/api/auth/register", "", tc.body, nil)
			require.Equal(t, http.StatusBadRequest, status)
		})
	}
}
