package gormstore

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aussiebroadwan/miniblog/internal/blog/store"
)

// repo is the single implementation of store.Repository. The per-entity
// repositories embed it and only add their own queries on top.
type repo[T store.Record] struct {
	db *gorm.DB
}

func (r *repo[T]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *repo[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (r *repo[T]) Find(ctx context.Context, query any, args ...any) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Where(query, args...).Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *repo[T]) Add(ctx context.Context, record *T) error {
	// Relation fields on domain records are read-only projections;
	// never let the ORM write through them.
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error)
}

// Update replaces the stored record wholesale. The existence check and
// the write share one transaction so a concurrent delete can't turn this
// into an insert.
func (r *repo[T]) Update(ctx context.Context, record *T) error {
	id := (*record).PrimaryKey()
	if id <= 0 {
		return store.ErrNotFound
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
			return translate(err)
		}
		if count == 0 {
			return store.ErrNotFound
		}
		return translate(tx.Omit(clause.Associations).Save(record).Error)
	})
}

func (r *repo[T]) DeleteByID(ctx context.Context, id int64) error {
	// Zero rows affected is fine: deleting an absent id is a no-op.
	return translate(r.db.WithContext(ctx).Delete(new(T), id).Error)
}

func (r *repo[T]) Delete(ctx context.Context, record *T) error {
	return translate(r.db.WithContext(ctx).Delete(record).Error)
}

func (r *repo[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}

func (r *repo[T]) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// translate maps driver-level failures onto the store's error taxonomy.
// Postgres reports structured codes via pgconn; sqlite only gives us the
// message text.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return store.ErrAlreadyExists
		case "23503": // foreign_key_violation
			return store.ErrRestricted
		}
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return store.ErrAlreadyExists
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return store.ErrRestricted
	}
	return err
}
