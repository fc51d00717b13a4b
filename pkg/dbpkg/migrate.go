package dbpkg

import (
	"database/sql"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/go-petr/bank-admin/db/migration"
)

// NewMigrate returns migrate instance reading the embedded migrations.
func NewMigrate(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(migration.FS, ".")
	if err != nil {
		return nil, err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, err
	}

	return migrate.NewWithInstance("iofs", src, "postgres", driver)
}

// MigrateUp applies all pending migrations.
func MigrateUp(db *sql.DB) error {
	m, err := NewMigrate(db)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
