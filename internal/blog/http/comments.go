package http

import (
	"net/http"

	"github.com/aussiebroadwan/miniblog/internal/blog/service"
	"github.com/aussiebroadwan/miniblog/pkg/httpx"
)

type CommentsHandler struct {
	CommentService *service.CommentService

	errs errWriter
}

// HandleListForPost returns a post's comment thread, oldest first.
//
//	@Summary	List comments on a post
//	@Tags		Comments
//	@Produce	json
//	@Param		id	path		int	true	"Post id"
//	@Success	200	{array}		CommentResponse
//	@Failure	404	{object}	ErrorResponse	"Post not found"
//	@Router		/api/posts/{id}/comments [get].
func (h *CommentsHandler) HandleListForPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID, ok := pathID(r)
	if !ok {
		h.errs.write(ctx, w, http.StatusNotFound, "post not found")
		return
	}

	comments, err := h.CommentService.ListForPost(ctx, postID)
	if err != nil {
		h.errs.writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCommentResponses(comments))
}

// HandleCreate attaches a comment to a post.
//
//	@Summary	Comment on a post
//	@Tags		Comments
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int				true	"Post id"
//	@Param		request	body		CommentRequest	true	"Comment body"
//	@Success	201		{object}	CommentResponse
//	@Failure	400		{object}	ErrorResponse	"Validation failed"
//	@Failure	401		{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure	404		{object}	ErrorResponse	"Post not found"
//	@Router		/api/posts/{id}/comments [post].
func (h *CommentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(ctx)
	if !ok {
		h.errs.write(ctx, w, http.StatusUnauthorized, "invalid or missing access token")
		return
	}

	postID, ok := pathID(r)
	if !ok {
		h.errs.write(ctx, w, http.StatusNotFound, "post not found")
		return
	}

	var req CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errs.writeValidationError(ctx, w, err)
		return
	}

	comment, err := h.CommentService.Create(ctx, actor, postID, req.Content)
	if err != nil {
		h.errs.writeServiceError(ctx, w, err)
		return
	}
	commentsCreatedTotal.Inc()

	httpx.WriteJSON(w, http.StatusCreated, toCommentResponse(comment))
}

// HandleGet returns a single comment with its author and post.
//
//	@Summary	Get a comment
//	@Tags		Comments
//	@Produce	json
//	@Param		id	path		int	true	"Comment id"
//	@Success	200	{object}	CommentResponse
//	@Failure	404	{object}	ErrorResponse	"Comment not found"
//	@Router		/api/comments/{id} [get].
func (h *CommentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(r)
	if !ok {
		h.errs.write(ctx, w, http.StatusNotFound, "comment not found")
		return
	}

	comment, err := h.CommentService.Get(ctx, id)
	if err != nil {
		h.errs.writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCommentResponse(comment))
}

// HandleMyComments returns every comment written by the authenticated
// user, newest first.
//
//	@Summary	List my comments
//	@Tags		Comments
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		CommentResponse
//	@Failure	401	{object}	ErrorResponse	"Invalid or missing access token"
//	@Router		/api/comments/my-comments [get].
func (h *CommentsHandler) HandleMyComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(ctx)
	if !ok {
		h.errs.write(ctx, w, http.StatusUnauthorized, "invalid or missing access token")
		return
	}

	comments, err := h.CommentService.ListByAuthor(ctx, actor.ID)
	if err != nil {
		h.errs.writeServiceError(ctx, w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toCommentResponses(comments))
}

// HandleUpdate rewrites a comment. Owner only.
//
//	@Summary	Update a comment
//	@Tags		Comments
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int				true	"Comment id"
//	@Param		request	body		CommentRequest	true	"Replacement body"
//	@Success	200		{object}	CommentResponse
//	@Failure	400		{object}	ErrorResponse	"Validation failed"
//	@Failure	401		{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure	403		{object}	ErrorResponse	"Not the comment author"
//	@Failure	404		{object}	ErrorResponse	"Comment not found"
//	@Router		/api/comments/{id} [put].
func (h *CommentsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(ctx)
	if !ok {
		h.errs.write(ctx, w, http.StatusUnauthorized, "invalid or missing access token")
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.errs.write(ctx, w, http.StatusNotFound, "comment not found")
		return
	}

	var req CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.errs.writeValidationError(ctx, w, err)
		return
	}

	comment, err := h.CommentService.Update(ctx, actor, id, req.Content)
	if err != nil {
		h.errs.writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCommentResponse(comment))
}

// HandleDelete removes a comment. Owner only.
//
//	@Summary	Delete a comment
//	@Tags		Comments
//	@Security	BearerAuth
//	@Param		id	path	int	true	"Comment id"
//	@Success	204	"Deleted"
//	@Failure	401	{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure	403	{object}	ErrorResponse	"Not the comment author"
//	@Failure	404	{object}	ErrorResponse	"Comment not found"
//	@Router		/api/comments/{id} [delete].
func (h *CommentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := actorFromContext(ctx)
	if !ok {
		h.errs.write(ctx, w, http.StatusUnauthorized, "invalid or missing access token")
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.errs.write(ctx, w, http.StatusNotFound, "comment not found")
		return
	}

	if err := h.CommentService.Delete(ctx, actor, id); err != nil {
		h.errs.writeServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
