package gormstore

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/aussiebroadwan/miniblog/internal/blog/domain"
)

type postsRepo struct {
	repo[domain.Post]
}

// newestFirst orders listings by creation time, id as a tiebreaker for
// records created within the same clock tick.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}

// oldestFirst is the chronological order used for comment threads.
func oldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

func (r *postsRepo) GetByUserID(ctx context.Context, userID int64) ([]domain.Post, error) {
	var posts []domain.Post
	err := newestFirst(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Comments").
		Where("user_id = ?", userID).
		Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

func (r *postsRepo) GetWithDetails(ctx context.Context, id int64) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Comments", oldestFirst).
		Preload("Comments.User").
		First(&post, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// likeEscaper neutralises LIKE metacharacters so a search term is
// matched as a literal substring, paired with ESCAPE '\' in the clause.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SearchByTitle matches case-insensitively on both dialects: sqlite's
// LIKE is only case-insensitive for ASCII and postgres' isn't at all,
// so both sides get lowered explicitly.
func (r *postsRepo) SearchByTitle(ctx context.Context, term string) ([]domain.Post, error) {
	var posts []domain.Post
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	err := newestFirst(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Comments").
		Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern).
		Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

func (r *postsRepo) GetPaged(ctx context.Context, page, size int) ([]domain.Post, error) {
	var posts []domain.Post
	err := newestFirst(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Comments").
		Offset((page - 1) * size).
		Limit(size).
		Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

func (r *postsRepo) GetRecent(ctx context.Context, n int) ([]domain.Post, error) {
	var posts []domain.Post
	err := newestFirst(r.db.WithContext(ctx)).
		Preload("User").
		Preload("Comments").
		Limit(n).
		Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}
