package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/miniblog/internal/blog/domain"
	"github.com/aussiebroadwan/miniblog/internal/blog/store"
	"github.com/aussiebroadwan/miniblog/pkg/slogx"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PostService owns the post lifecycle. Mutations take the acting user
// explicitly and refuse to touch posts the actor does not own.
type PostService struct {
	Store store.Store
}

// PostPage is one page of the newest-first post listing together with
// the paging bookkeeping the boundary echoes back.
type PostPage struct {
	Items       []domain.Post
	CurrentPage int
	PageSize    int
	TotalCount  int64
	TotalPages  int
}

// PostParams carries the writable fields of a post.
type PostParams struct {
	Title     string
	Content   string
	ImagePath *string
}

// List returns one page of posts, newest first. Out-of-range paging
// inputs are clamped rather than rejected.
func (s *PostService) List(ctx context.Context, page, pageSize int) (*PostPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	total, err := s.Store.Posts().Count(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.Store.Posts().GetPaged(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &PostPage{
		Items:       items,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalCount:  total,
		TotalPages:  totalPages,
	}, nil
}

// Get fetches a post with its author and comment thread.
func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.Store.Posts().GetWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("post", id)
		}
		return nil, err
	}
	return post, nil
}

// Search returns posts whose title contains the term, case-insensitively,
// newest first.
func (s *PostService) Search(ctx context.Context, term string) ([]domain.Post, error) {
	return s.Store.Posts().SearchByTitle(ctx, term)
}

// ListByAuthor returns every post owned by the user, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, userID int64) ([]domain.Post, error) {
	return s.Store.Posts().GetByUserID(ctx, userID)
}

// Create publishes a new post owned by the actor.
func (s *PostService) Create(ctx context.Context, actor domain.Actor, p PostParams) (*domain.Post, error) {
	post := &domain.Post{
		Title:     p.Title,
		Content:   p.Content,
		ImagePath: p.ImagePath,
		UserID:    actor.ID,
	}
	if err := s.Store.Posts().Add(ctx, post); err != nil {
		return nil, err
	}

	slogx.FromContext(ctx).Info("post created",
		slog.Int64("post_id", post.ID),
		slog.Int64("user_id", actor.ID),
	)

	// Reload with the author attached so the response matches reads.
	return s.Get(ctx, post.ID)
}

// Update rewrites the post's content fields. Only the owner may update;
// anyone else gets ErrForbidden without learning anything further.
func (s *PostService) Update(ctx context.Context, actor domain.Actor, id int64, p PostParams) (*domain.Post, error) {
	post, err := s.Store.Posts().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("post", id)
		}
		return nil, err
	}

	if !domain.CanMutate(actor.ID, post.UserID) {
		return nil, ErrForbidden
	}

	now := time.Now().UTC()
	post.Title = p.Title
	post.Content = p.Content
	post.ImagePath = p.ImagePath
	post.UpdatedAt = &now

	if err := s.Store.Posts().Update(ctx, post); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("post", id)
		}
		return nil, err
	}

	slogx.FromContext(ctx).Info("post updated",
		slog.Int64("post_id", id),
		slog.Int64("user_id", actor.ID),
	)

	return s.Get(ctx, id)
}

// Delete removes the post and, through the schema, every comment on it.
func (s *PostService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	post, err := s.Store.Posts().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("post", id)
		}
		return err
	}

	if !domain.CanMutate(actor.ID, post.UserID) {
		return ErrForbidden
	}

	if err := s.Store.Posts().DeleteByID(ctx, id); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("post deleted",
		slog.Int64("post_id", id),
		slog.Int64("user_id", actor.ID),
	)
	return nil
}
