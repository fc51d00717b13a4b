// Package main seeds the database with demo accounts and random activity.
package main

import (
	"context"
	"flag"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/go-petr/bank-admin/internal/middleware"
	"github.com/go-petr/bank-admin/internal/seed"
	"github.com/go-petr/bank-admin/pkg/configpkg"
	"github.com/go-petr/bank-admin/pkg/dbpkg"

	_ "github.com/lib/pq"
	_ "time/tzdata"
)

func main() {
	yearsFlag := flag.String("years", "2023,2024", "Comma separated years to seed")
	flag.Parse()

	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	var years []int

	for _, s := range strings.Split(*yearsFlag, ",") {
		year, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || year < 1 {
			logger.Fatal().Str("year", s).Msg("invalid year")
		}

		years = append(years, year)
	}

	loc, err := config.Location()
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load dashboard timezone")
	}

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}
	defer db.Close()

	ctx := logger.WithContext(context.Background())

	if err := seed.New(db).Run(ctx, years, loc); err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}

	logger.Info().Ints("years", years).Msg("seed data created")
}
