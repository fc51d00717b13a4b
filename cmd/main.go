// Package main runs the admin dashboard API of the bank.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/go-petr/bank-admin/cmd/httpserver"
	"github.com/go-petr/bank-admin/internal/middleware"
	"github.com/go-petr/bank-admin/pkg/configpkg"
	"github.com/go-petr/bank-admin/pkg/dbpkg"

	_ "github.com/lib/pq"
	_ "time/tzdata"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}
	defer db.Close()

	if config.AutoMigrate {
		if err := dbpkg.MigrateUp(db.DB); err != nil {
			logger.Fatal().Err(err).Msg("cannot migrate database")
		}

		logger.Info().Msg("database migrated")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}
	defer server.Close()

	logger.Info().Str("addr", config.ServerAddress).Msg("BANK ADMIN API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
