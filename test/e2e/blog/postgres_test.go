package blog_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/miniblog/internal/blog/domain"
	"github.com/aussiebroadwan/miniblog/internal/blog/store"
	gormstore "github.com/aussiebroadwan/miniblog/internal/blog/store/drivers/gorm"
)

// TestPostgresStore runs the store against a real postgres container to
// catch dialect drift the sqlite-backed tests can't see: the pgx unique
// and foreign key error codes, and the postgres migration files.
func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "blog",
				"POSTGRES_PASSWORD": "blog",
				"POSTGRES_DB":       "blog",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=blog password=blog dbname=blog sslmode=disable",
		host, port.Port())

	st, err := gormstore.NewStore(gormstore.DriverPostgres, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(ctx))

	user := &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
		DisplayName:  "Alice",
	}
	require.NoError(t, st.Users().Add(ctx, user))

	t.Run("unique violations map to already exists", func(t *testing.T) {
		err := st.Users().Add(ctx, &domain.User{
			Username:     "alice",
			Email:        "other@example.com",
			PasswordHash: "x",
			DisplayName:  "Other",
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	post := &domain.Post{
		Title:   "Hello from postgres",
		Content: "Written to a real database for once.",
		UserID:  user.ID,
	}
	require.NoError(t, st.Posts().Add(ctx, post))

	commenter := &domain.User{
		Username:     "bob",
		Email:        "bob@example.com",
		PasswordHash: "x",
		DisplayName:  "Bob",
	}
	require.NoError(t, st.Users().Add(ctx, commenter))
	require.NoError(t, st.Comments().Add(ctx, &domain.Comment{
		Content: "works here too",
		PostID:  post.ID,
		UserID:  commenter.ID,
	}))

	t.Run("restrict maps to restricted", func(t *testing.T) {
		require.ErrorIs(t, st.Users().DeleteByID(ctx, commenter.ID), store.ErrRestricted)
	})

	t.Run("cascade removes posts and their comments", func(t *testing.T) {
		require.NoError(t, st.Users().DeleteByID(ctx, user.ID))

		count, err := st.Comments().Count(ctx)
		require.NoError(t, err)
		require.Zero(t, count)
	})
}
