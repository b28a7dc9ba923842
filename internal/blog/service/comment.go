package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/miniblog/internal/blog/domain"
	"github.com/aussiebroadwan/miniblog/internal/blog/store"
	"github.com/aussiebroadwan/miniblog/pkg/slogx"
)

// CommentService owns the comment lifecycle. Same ownership rule as
// posts: only the author of a comment may change or remove it, and that
// includes comments on the actor's own posts.
type CommentService struct {
	Store store.Store
}

// ListForPost returns a post's comments in the order they were written.
// The post must exist; an empty thread on a real post is an empty slice,
// not an error.
func (s *CommentService) ListForPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	exists, err := s.Store.Posts().Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("post", postID)
	}
	return s.Store.Comments().GetByPostID(ctx, postID)
}

// ListByAuthor returns every comment the user has written, newest first.
func (s *CommentService) ListByAuthor(ctx context.Context, userID int64) ([]domain.Comment, error) {
	return s.Store.Comments().GetByUserID(ctx, userID)
}

// Get fetches a comment with its author and the post it hangs off.
func (s *CommentService) Get(ctx context.Context, id int64) (*domain.Comment, error) {
	comment, err := s.Store.Comments().GetWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("comment", id)
		}
		return nil, err
	}
	return comment, nil
}

// Create attaches a new comment by the actor to the post.
func (s *CommentService) Create(ctx context.Context, actor domain.Actor, postID int64, content string) (*domain.Comment, error) {
	exists, err := s.Store.Posts().Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("post", postID)
	}

	comment := &domain.Comment{
		Content: content,
		PostID:  postID,
		UserID:  actor.ID,
	}
	if err := s.Store.Comments().Add(ctx, comment); err != nil {
		return nil, err
	}

	slogx.FromContext(ctx).Info("comment created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("post_id", postID),
		slog.Int64("user_id", actor.ID),
	)

	return s.Get(ctx, comment.ID)
}

// Update rewrites the comment body. Owner only.
func (s *CommentService) Update(ctx context.Context, actor domain.Actor, id int64, content string) (*domain.Comment, error) {
	comment, err := s.Store.Comments().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("comment", id)
		}
		return nil, err
	}

	if !domain.CanMutate(actor.ID, comment.UserID) {
		return nil, ErrForbidden
	}

	comment.Content = content
	if err := s.Store.Comments().Update(ctx, comment); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("comment", id)
		}
		return nil, err
	}

	slogx.FromContext(ctx).Info("comment updated",
		slog.Int64("comment_id", id),
		slog.Int64("user_id", actor.ID),
	)

	return s.Get(ctx, id)
}

// Delete removes the comment. Owner only.
func (s *CommentService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	comment, err := s.Store.Comments().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("comment", id)
		}
		return err
	}

	if !domain.CanMutate(actor.ID, comment.UserID) {
		return ErrForbidden
	}

	if err := s.Store.Comments().DeleteByID(ctx, id); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("comment deleted",
		slog.Int64("comment_id", id),
		slog.Int64("user_id", actor.ID),
	)
	return nil
}

