package gormstore

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/aussiebroadwan/miniblog/internal/blog/store/drivers/gorm/migrations"
)

// ApplyMigrations applies any pending schema migrations using the
// embedded migration files for the active dialect. The migration
// directory name matches the driver name, so each dialect only ever
// sees its own SQL.
func (s *Store) ApplyMigrations() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	var driver database.Driver
	switch s.driver {
	case DriverSQLite:
		driver, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	case DriverPostgres:
		driver, err = migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
	default:
		return fmt.Errorf("gormstore: no migrations for driver %q", s.driver)
	}
	if err != nil {
		return err
	}

	src, err := iofs.New(migrations.Migrations, s.driver)
	if err != nil {
		return err
	}

	instance, err := migrate.NewWithInstance("iofs", src, s.driver, driver)
	if err != nil {
		return err
	}

	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
