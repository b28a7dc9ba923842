package blog_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	httpapi "github.com/aussiebroadwan/miniblog/internal/blog/http"
	"github.com/aussiebroadwan/miniblog/internal/blog/service"
	gormstore "github.com/aussiebroadwan/miniblog/internal/blog/store/drivers/gorm"
	"github.com/aussiebroadwan/miniblog/pkg/jwtx"
	"github.com/aussiebroadwan/miniblog/pkg/slogx"
)

/*
 * Common helpers for blog service end-to-end tests. The full router and
 * service stack runs in-process against an in-memory sqlite database, so
 * these flows exercise everything except the real listener.
 */

const (
	testJWTSecret = "e2e-test-secret-at-least-32-bytes!!"
	testIssuer    = "miniblog-test"
	testAudience  = "miniblog-api"
)

// setupServer builds the whole stack and returns its base URL.
func setupServer(t *testing.T) string {
	t.Helper()

	st, err := gormstore.NewStore(gormstore.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens := jwtx.NewHS256([]byte(testJWTSecret), testIssuer, testAudience)
	logger := slogx.New(slogx.Config{
		Service: "blog-service",
		Version: "e2e",
		Env:     "test",
		Level:   "error",
	})

	router := httpapi.NewRouter(tokens, "e2e", true, st, logger)
	router.AuthService = &service.AuthService{
		Store:     st,
		Tokens:    tokens,
		AccessTTL: time.Hour,
	}
	router.UserService = &service.UserService{Store: st}
	router.PostService = &service.PostService{Store: st}
	router.CommentService = &service.CommentService{Store: st}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server.URL
}

// doJSON performs a request with an optional JSON body and bearer token,
// decoding any JSON response into out when out is non-nil.
func doJSON(t *testing.T, method, url, token string, body, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}

	return resp.StatusCode
}

type authResult struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	User      struct {
		ID          int64  `json:"id"`
		Username    string `json:"username"`
		Email       string `json:"email"`
		DisplayName string `json:"display_name"`
	} `json:"user"`
}

type postResponse struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	UserID    int64   `json:"user_id"`
	UpdatedAt *string `json:"updated_at"`
	Author    *struct {
		Username string `json:"username"`
	} `json:"author"`
	Comments []commentResponse `json:"comments"`
}

type commentResponse struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	PostID  int64  `json:"post_id"`
	UserID  int64  `json:"user_id"`
	Author  *struct {
		Username string `json:"username"`
	} `json:"author"`
}

type pagedPosts struct {
	Items       []postResponse `json:"items"`
	CurrentPage int            `json:"current_page"`
	PageSize    int            `json:"page_size"`
	TotalCount  int64          `json:"total_count"`
	TotalPages  int            `json:"total_pages"`
}

type errorResponse struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	TraceID    string `json:"trace_id"`
}

// register creates an account through the API and returns its auth state.
func register(t *testing.T, baseURL, username string) authResult {
	t.Helper()

	var res authResult
	status := doJSON(t, http.MethodPost, baseURL+"/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "hunter22",
	}, &res)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, res.Token)
	return res
}

// createPost publishes a post through the API.
func createPost(t *testing.T, baseURL, token, title string) postResponse {
	t.Helper()

	var post postResponse
	status := doJSON(t, http.MethodPost, baseURL+"/api/posts", token, map[string]string{
		"title":   title,
		"content": fmt.Sprintf("The full content of %q, padded for length.", title),
	}, &post)
	require.Equal(t, http.StatusCreated, status)
	require.NotZero(t, post.ID)
	return post
}
