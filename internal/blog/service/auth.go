package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/miniblog/internal/blog/domain"
	"github.com/aussiebroadwan/miniblog/internal/blog/store"
	"github.com/aussiebroadwan/miniblog/pkg/cryptox"
	"github.com/aussiebroadwan/miniblog/pkg/jwtx"
	"github.com/aussiebroadwan/miniblog/pkg/slogx"
)

// AuthService owns account registration and credential login. Both paths
// end in a signed access token; there is no session state server-side.
type AuthService struct {
	Store     store.Store
	Tokens    *jwtx.HS256
	AccessTTL time.Duration
}

// RegisterParams carries the already syntax-validated registration input.
type RegisterParams struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// Register creates an account and logs it in. Username availability is
// checked before email so a request that collides on both reports the
// username conflict.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*domain.AuthResult, error) {
	l := slogx.FromContext(ctx)

	taken, err := s.Store.Users().UsernameExists(ctx, p.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.Store.Users().EmailExists(ctx, p.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	displayName := p.DisplayName
	if displayName == "" {
		displayName = p.Username
	}

	user := &domain.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		DisplayName:  displayName,
	}
	if err := s.Store.Users().Add(ctx, user); err != nil {
		// A concurrent registration can slip between the existence checks
		// and the insert; the unique indexes are the true arbiter. Re-check
		// to report which half collided.
		if errors.Is(err, store.ErrAlreadyExists) {
			if taken, checkErr := s.Store.Users().UsernameExists(ctx, p.Username); checkErr == nil && taken {
				return nil, ErrUsernameTaken
			}
			if taken, checkErr := s.Store.Users().EmailExists(ctx, p.Email); checkErr == nil && taken {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	l.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return s.issue(user)
}

// Login verifies a username/password pair. Unknown username and wrong
// password report the same error so the response doesn't reveal which
// half was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login failed", slog.String("username", username))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	l.Info("user logged in", slog.Int64("user_id", user.ID))
	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (*domain.AuthResult, error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	token, expiresAt, err := s.Tokens.Issue(user.ID, user.Username, user.Email, ttl)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Public(),
	}, nil
}
