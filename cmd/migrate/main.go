// Package main applies or rolls back the database schema migrations.
//
// Usage: migrate [up|down|version]
package main

import (
	"errors"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog/log"

	"github.com/go-petr/bank-admin/internal/middleware"
	"github.com/go-petr/bank-admin/pkg/configpkg"
	"github.com/go-petr/bank-admin/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}
	defer db.Close()

	m, err := dbpkg.NewMigrate(db.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create migrate instance")
	}

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			logger.Fatal().Err(err).Msg("cannot read schema version")
		}

		logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("schema version")

		return
	default:
		logger.Fatal().Str("command", command).Msg("usage: migrate [up|down|version]")
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal().Err(err).Str("command", command).Msg("migration failed")
	}

	logger.Info().Str("command", command).Msg("migration done")
}
