package blog_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommentFlow(t *testing.T) {
	baseURL := setupServer(t)
	alice := register(t, baseURL, "alice")
	bob := register(t, baseURL, "bob")

	post := createPost(t, baseURL, alice.Token, "Open thread")

	var created commentResponse
	status := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/posts/%d/comments", baseURL, post.ID), bob.Token,
		map[string]string{"content": "first!"}, &created)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, bob.User.ID, created.UserID)
	require.NotNil(t, created.Author)
	require.Equal(t, "bob", created.Author.Username)

	t.Run("commenting requires a token", func(t *testing.T) {
		status := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/posts/%d/comments", baseURL, post.ID), "",
			map[string]string{"content": "anonymous"}, nil)
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("commenting on a missing post is a 404", func(t *testing.T) {
		status := doJSON(t, http.MethodPost, baseURL+"/api/posts/99999/comments", bob.Token,
			map[string]string{"content": "into the void"}, nil)
		require.Equal(t, http.StatusNotFound, status)
	})

	t.Run("thread appears on the post detail", func(t *testing.T) {
		var detail postResponse
		status := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/posts/%d", baseURL, post.ID), "", nil, &detail)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, detail.Comments, 1)
		require.Equal(t, "first!", detail.Comments[0].Content)
	})

	t.Run("thread listing is public and chronological", func(t *testing.T) {
		var second commentResponse
		status := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/posts/%d/comments", baseURL, post.ID), alice.Token,
			map[string]string{"content": "welcome in"}, &second)
		require.Equal(t, http.StatusCreated, status)

		var thread []commentResponse
		status = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/posts/%d/comments", baseURL, post.ID), "", nil, &thread)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, thread, 2)
		require.Equal(t, created.ID, thread[0].ID)
		require.Equal(t, second.ID, thread[1].ID)
	})

	t.Run("post owner cannot edit another author's comment", func(t *testing.T) {
		status := doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/comments/%d", baseURL, created.ID), alice.Token,
			map[string]string{"content": "overwritten"}, nil)
		require.Equal(t, http.StatusForbidden, status)
	})

	t.Run("author can edit", func(t *testing.T) {
		var updated commentResponse
		status := doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/comments/%d", baseURL, created.ID), bob.Token,
			map[string]string{"content": "first! (edited)"}, &updated)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "first! (edited)", updated.Content)
	})

	t.Run("my comments lists only mine", func(t *testing.T) {
		var mine []commentResponse
		status := doJSON(t, http.MethodGet, baseURL+"/api/comments/my-comments", bob.Token, nil, &mine)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, mine, 1)
		require.Equal(t, created.ID, mine[0].ID)
	})

	t.Run("author can delete", func(t *testing.T) {
		status := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/comments/%d", baseURL, created.ID), bob.Token, nil, nil)
		require.Equal(t, http.StatusNoContent, status)

		status = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/comments/%d", baseURL, created.ID), "", nil, nil)
		require.Equal(t, http.StatusNotFound, status)
	})

	t.Run("deleting the post removes its thread", func(t *testing.T) {
		status := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/posts/%d", baseURL, post.ID), alice.Token, nil, nil)
		require.Equal(t, http.StatusNoContent, status)

		status = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/posts/%d/comments", baseURL, post.ID), "", nil, nil)
		require.Equal(t, http.StatusNotFound, status)
	})
}
