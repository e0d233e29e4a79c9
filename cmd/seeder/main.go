package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_search/internal/adapters/observability"
	"hotel_search/internal/app"
	"hotel_search/internal/catalog"
	"hotel_search/internal/shared"
	mysqlrepo "hotel_search/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	cities := catalog.Builtin().Cities()
	log.Info().
		Int("cities", len(cities)).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	rep, err := app.NewCatalogService(mysqlrepo.New(db)).Seed(ctx, cities, cfg.SeedWorkers)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding aborted")
	}
	if rep.Failed > 0 {
		log.Fatal().Int("failed", rep.Failed).Int("upserted", rep.Upserted).Msg("seeding incomplete")
	}
	log.Info().Int("upserted", rep.Upserted).Msg("seeding completed")
}
