package gormstore

import (
	"context"

	"github.com/aussiebroadwan/miniblog/internal/blog/domain"
)

type commentsRepo struct {
	repo[domain.Comment]
}

func (r *commentsRepo) GetByPostID(ctx context.Context, postID int64) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := oldestFirst(r.db.WithContext(ctx)).
		Preload("User").
		Where("post_id = ?", postID).
		Find(&comments).Error
	if err != nil {
		return nil, translate(err)
	}
	return comments, nil
}

func (r *commentsRepo) GetByUserID(ctx context.Context, userID int64) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := newestFirst(r.db.WithContext(ctx)).
		Preload("Post").
		Where("user_id = ?", userID).
		Find(&comments).Error
	if err != nil {
		return nil, translate(err)
	}
	return comments, nil
}

func (r *commentsRepo) GetWithDetails(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Post").
		First(&comment, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}
