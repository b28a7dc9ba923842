package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/miniblog/internal/blog/domain"
	"github.com/aussiebroadwan/miniblog/internal/blog/store"
)

type UserService struct {
	Store store.Store
}

// GetByID fetches the public view of a user.
func (s *UserService) GetByID(ctx context.Context, id int64) (domain.PublicUser, error) {
	user, err := s.Store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PublicUser{}, notFound("user", id)
		}
		return domain.PublicUser{}, err
	}
	return user.Public(), nil
}
