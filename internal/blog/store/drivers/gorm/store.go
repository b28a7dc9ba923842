// Package gormstore is the gorm-backed implementation of the blog store.
// It speaks sqlite for single-binary deployments and postgres for
// everything else; the schema itself comes from embedded migrations, not
// from AutoMigrate, because the cascade rules are part of the contract
// and belong in reviewable SQL.
package gormstore

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aussiebroadwan/miniblog/internal/blog/domain"
	"github.com/aussiebroadwan/miniblog/internal/blog/store"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Store struct {
	db     *gorm.DB
	driver string
}

// NewStore opens a database by driver name and DSN. For sqlite the
// connection also gets foreign key enforcement switched on, which sqlite
// leaves off by default and the cascade/restrict policy depends on.
func NewStore(driver, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite, "":
		driver = DriverSQLite
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("gormstore: unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// slog owns logging; gorm's own logger stays quiet.
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("gormstore: open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		// sqlite allows one writer; a single pooled connection avoids
		// SQLITE_BUSY and keeps :memory: databases coherent.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)

		if err := db.Exec(`PRAGMA foreign_keys = ON`).Error; err != nil {
			return nil, err
		}
	}

	return &Store{db: db, driver: driver}, nil
}

func (s *Store) Users() store.Users       { return &usersRepo{repo[domain.User]{db: s.db}} }
func (s *Store) Posts() store.Posts       { return &postsRepo{repo[domain.Post]{db: s.db}} }
func (s *Store) Comments() store.Comments { return &commentsRepo{repo[domain.Comment]{db: s.db}} }

// WithTx executes fn against a transaction-scoped Store. fn returning an
// error rolls everything back; nil commits.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, driver: s.driver})
	})
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
