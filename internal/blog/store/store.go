// Package store defines the data access contracts for the blog service.
// Concrete drivers live under drivers/ and implement Store; everything
// above this package talks only to these interfaces.
package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/miniblog/internal/blog/domain"
)

var (
	// ErrNotFound reports an absent record.
	ErrNotFound = errors.New("store: not found")

	// ErrAlreadyExists reports a unique-constraint violation.
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrRestricted reports a delete blocked by a restrict-on-delete
	// foreign key (e.g. removing a user who still has comments on other
	// people's posts).
	ErrRestricted = errors.New("store: delete restricted by dependent records")
)

// Record is any entity with an integer primary key. The generic
// repository needs the key to implement id-addressed operations without
// per-entity code.
type Record interface {
	PrimaryKey() int64
}

// Repository is the entity-agnostic CRUD contract shared by every record
// type. Entity-specific repositories compose it rather than inheriting a
// base implementation, so there is exactly one tested copy of the common
// path.
//
// Reads hand back detached values: mutating a returned record has no
// effect on the store until it is explicitly passed to Update. Each
// write is atomic per call under the backing store's own transaction
// guarantees; no optimistic concurrency token is used, so concurrent
// updates to the same record are last-writer-wins.
type Repository[T Record] interface {
	// GetAll returns every record.
	GetAll(ctx context.Context) ([]T, error)

	// GetByID returns the record with the given key, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*T, error)

	// Find returns the records matching a query condition, e.g.
	// Find(ctx, "user_id = ?", 7).
	Find(ctx context.Context, query any, args ...any) ([]T, error)

	// Add inserts the record and fills in its store-assigned id.
	Add(ctx context.Context, record *T) error

	// Update replaces the stored record wholesale (no partial patch).
	// The record must carry a valid id; ErrNotFound when no such record
	// exists. The existence check and the write share one transaction.
	Update(ctx context.Context, record *T) error

	// DeleteByID removes the record with the given key. Deleting an
	// absent id is a no-op, not an error.
	DeleteByID(ctx context.Context, id int64) error

	// Delete removes the given record.
	Delete(ctx context.Context, record *T) error

	// Count returns the total number of records.
	Count(ctx context.Context) (int64, error)

	// Exists reports whether a record with the given key exists.
	Exists(ctx context.Context, id int64) (bool, error)
}

// Users adds the identity-specific queries on top of the generic contract.
type Users interface {
	Repository[domain.User]

	// GetByUsername is used during login; ErrNotFound for unknown names.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail returns the account owning an email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UsernameExists and EmailExists back the registration duplicate
	// checks without fetching whole records.
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	// GetWithPosts eagerly fetches a user together with their posts.
	GetWithPosts(ctx context.Context, id int64) (*domain.User, error)
}

// Posts adds the post-specific queries.
type Posts interface {
	Repository[domain.Post]

	// GetByUserID returns a user's posts, newest first.
	GetByUserID(ctx context.Context, userID int64) ([]domain.Post, error)

	// GetWithDetails returns a post with its author, its comments and
	// each comment's author resolved in one logical fetch.
	GetWithDetails(ctx context.Context, id int64) (*domain.Post, error)

	// SearchByTitle returns posts whose title contains the term,
	// case-insensitively, newest first.
	SearchByTitle(ctx context.Context, term string) ([]domain.Post, error)

	// GetPaged returns one page ordered newest first. Callers clamp
	// page (>=1) and size (1..100) beforehand; the store assumes valid
	// input and computes offset (page-1)*size.
	GetPaged(ctx context.Context, page, size int) ([]domain.Post, error)

	// GetRecent returns the n newest posts.
	GetRecent(ctx context.Context, n int) ([]domain.Post, error)
}

// Comments adds the comment-specific queries.
type Comments interface {
	Repository[domain.Comment]

	// GetByPostID returns a post's comments in chronological order,
	// each with its author resolved.
	GetByPostID(ctx context.Context, postID int64) ([]domain.Comment, error)

	// GetByUserID returns a user's comments, newest first, each with
	// its parent post resolved.
	GetByUserID(ctx context.Context, userID int64) ([]domain.Comment, error)

	// GetWithDetails returns a comment with its author and parent post.
	GetWithDetails(ctx context.Context, id int64) (*domain.Comment, error)
}

// Store is the root data access interface.
type Store interface {
	Users() Users
	Posts() Posts
	Comments() Comments

	// ApplyMigrations brings the schema up to date using the embedded
	// migration files.
	ApplyMigrations() error

	// WithTx executes fn against a transaction-scoped Store, committing
	// when fn returns nil and rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// Close releases the underlying connection pool.
	Close() error
}
