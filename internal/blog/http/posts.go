package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/miniblog/internal/blog/service"
	"github.com/aussiebroadwan/miniblog/pkg/httpx"
)

type PostsHandler struct {
	PostService *service.PostService

	errs errWriter
}

// pathID parses the {id} segment. A non-numeric id is simply a route
// that matches nothing, hence 404 rather than 400.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// queryInt parses an integer query parameter, falling back on absence
// or garbage.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// HandleList returns one page of posts, newest first.
//
//	@Summary	List posts
//	@Tags		Posts
//	@Produce	json
//	@Param		page		query		int	false	"Page number (1-based)"		default(1)
//	@Param		page_size	query		int	false	"Posts per page (max 100)"	default(10)
//	@Success	200			{object}	PagedPostsResponse
//	@Router		/api/posts [get].
func (h *PostsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, err := h.PostService.List(ctx,
		queryInt(r, "page", 1),
		queryInt(r, "page_size", service.DefaultPageSize),
	)
	if err != nil {
		h.errs.writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, PagedPostsResponse{
		Items:       toPostResponses(page.Items),
		CurrentPage: page.CurrentPage,
		PageSize:    page.PageSize,
		TotalCount:  page.TotalCount,
		TotalPages:  page.TotalPages,
	})
}

// HandleGet returns a single post with its author and comment thread.
//
//	@Summary	Get a post
//	@Tags		Posts
//	@Produce	json
//	@Param		id	path		int	true	"Post id"
//	@Success	200	{object}	PostResponse
//	@Failure	404	{object}	ErrorResponse	"Post not found"
//	@Router		/api/posts/{id} [get].
func (h *PostsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(r)
	if !ok {
		h.errs.write(ctx, w, http.StatusNotFound, "post not found")
		return
	}

	post, err := h.PostService.Get(ctx, id)
	if err != nil {
		h.errs.writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostResponse(post))
}

// HandleSearch returns posts whose title contains the query term.
//
//	@Summary	Search posts by title
//	@Tags		Posts
//	@Produce	json
//	@Param		query	query		string	true	"Search term, matched case-insensitively"
//	@Success	200		{array}		PostResponse
//	@Failure	400		{object}	ErrorResponse	"Blank search term"
//	@Router		/api/posts/search [get].
func (h *PostsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	term := strings.TrimSpace(r.URL.Query().Get("query"))
	if term == "" {
		h.errs.write(ctx, w, http.StatusBadRequest, "query parameter is required")
		return
	}

	posts, err := h.PostService.Search(ctx, term)
	if err != nil {
		h.errs.writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostResponses(posts))
}

// HandleMyPosts returns every post owned by the authenticated user.
//
//	@Summary	List my posts
//	@Tags		Posts
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		PostResponse
//	@Failure	401	{object}	ErrorResponse	"Invalid or missing access token"
//	@Router		/api/posts/my-posts [get].
func (h *PostsHandler) HandleMyPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(ctx)
	if !ok {
		h.errs.write(ctx, w, http.StatusUnauthorized, "invalid or missing access token")
		return
	}

	posts, err := h.PostService.ListByAuthor(ctx, actor.ID)
	if err != nil {
		h.errs.writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toPostResponses(posts))
}

// HandleCreate publishes a new post owned by the authenticated user.
//
//	@Summary	Create a post
//	@Tags		Posts
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		PostRequest	true	"Post contents"
//	@Success	201		{object}	PostResponse
//	@Failure	400		{object}	ErrorResponse	"Validation failed"
//	@Failure	401		{object}	ErrorResponse	"Invalid or missing access token"
//	@Router		/api/posts [post].
func (h *PostsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(ctx)
	if !ok {
		h.errs.write(ctx, w, http.StatusUnauthorized, "invalid or missing access token")
		return
	}

	var req PostRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errs.writeValidationError(ctx, w, err)
		return
	}

	post, err := h.PostService.Create(ctx, actor, service.PostParams{
		Title:     req.Title,
		Content:   req.Content,
		ImagePath: req.ImagePath,
	})
	if err != nil {
		h.errs.writeServiceError(ctx, w, err)
		return
	}
	postsCreatedTotal.Inc()

	httpx.WriteJSON(w, http.StatusCreated, toPostResponse(post))
}

// HandleUpdate rewrites a post. Owner only.
//
//	@Summary	Update a post
//	@Tags		Posts
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int			true	"Post id"
//	@Param		request	body		PostRequest	true	"Replacement contents"
//	@Success	200		{object}	PostResponse
//	@Failure	400		{object}	ErrorResponse	"Validation failed"
//	@Failure	401		{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure	403		{object}	ErrorResponse	"Not the post owner"
//	@Failure	404		{object}	ErrorResponse	"Post not found"
//	@Router		/api/posts/{id} [put].
func (h *PostsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(ctx)
	if !ok {
		h.errs.write(ctx, w, http.StatusUnauthorized, "invalid or missing access token")
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.errs.write(ctx, w, http.StatusNotFound, "post not found")
		return
	}

	var req PostRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errs.writeValidationError(ctx, w, err)
		return
	}

	post, err := h.PostService.Update(ctx, actor, id, service.PostParams{
		Title:     req.Title,
		Content:   req.Content,
		ImagePath: req.ImagePath,
	})
	if err != nil {
		h.errs.writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostResponse(post))
}

// HandleDelete removes a post and its comments. Owner only.
//
//	@Summary	Delete a post
//	@Tags		Posts
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Post id"
//	@Success	204	"Deleted"
//	@Failure	401	{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure	403	{object}	ErrorResponse	"Not the post owner"
//	@Failure	404	{object}	ErrorResponse	"Post not found"
//	@Router		/api/posts/{id} [delete].
func (h *PostsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(ctx)
	if !ok {
		h.errs.write(ctx, w, http.StatusUnauthorized, "invalid or missing access token")
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.errs.write(ctx, w, http.StatusNotFound, "post not found")
		return
	}

	if err := h.PostService.Delete(ctx, actor, id); err != nil {
		h.errs.writeServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
