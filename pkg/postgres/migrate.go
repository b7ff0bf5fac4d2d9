package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// RunMigrations runs all pending database migrations from the given source URL
// (e.g. "file://./migrations"). If there are no new migrations to apply the
// function returns nil.
func RunMigrations(dsn string, migrationsDir string) error {
	m, err := migrate.New(migrationsDir, dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations up: %w", err)
	}

	return nil
}

// RunMigrationsDown rolls back all database migrations.
// If there are no migrations to roll back the function returns nil.
func RunMigrationsDown(dsn string, migrationsDir string) error {
	m, err := migrate.New(migrationsDir, dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations down: %w", err)
	}

	return nil
}

// MigrationVersion reports the currently applied migration version and whether
// the database is in a dirty state from a failed migration.
func MigrationVersion(dsn string, migrationsDir string) (version uint, dirty bool, err error) {
	m, err := migrate.New(migrationsDir, dsn)
	if err != nil {
		return 0, false, fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	version, dirty, err = m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("postgres: migration version: %w", err)
	}
	return version, dirty, nil
}
