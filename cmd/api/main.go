package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_search/internal/adapters/hotelapi"
	server "hotel_search/internal/adapters/http_server"
	"hotel_search/internal/adapters/observability"
	redisad "hotel_search/internal/adapters/redis"
	"hotel_search/internal/app"
	"hotel_search/internal/catalog"
	"hotel_search/internal/domain"
	"hotel_search/internal/shared"
	mysqlrepo "hotel_search/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	table := loadCatalog(ctx, cfg)
	static := app.NewStaticSource(table)

	var svc *app.SearchService
	switch cfg.DataSource {
	case shared.SourceLive:
		client, err := hotelapi.New(cfg.HotelAPIBase, cfg.HotelAPIKey, cfg.HotelAPIRPS, cfg.HotelAPITimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize hotel API client")
		}
		live := app.NewLiveSource(client, liveCache(ctx, cfg), cfg.CacheTTL)
		svc = app.NewSearchServiceWithFallback(live, static, cfg.LiveBudget)
	default:
		svc = app.NewSearchService(static)
	}
	log.Info().
		Str("data_source", cfg.DataSource).
		Str("catalog", cfg.CatalogSource).
		Strs("cities", table.Keys()).
		Msg("search service ready")

	// http
	srv := server.New(cfg.CORSOrigins, cfg.HTTPTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(server.NewHandlers(svc))

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

// loadCatalog returns the builtin table unless CATALOG_SOURCE=mysql.
func loadCatalog(ctx context.Context, cfg shared.Config) *catalog.Table {
	if cfg.CatalogSource != shared.CatalogMySQL {
		return catalog.Builtin()
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	t, err := app.NewCatalogService(mysqlrepo.New(db)).Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("catalog load failed")
	}
	return t
}

// liveCache is Redis when REDIS_ADDR is set and reachable, otherwise nil.
func liveCache(ctx context.Context, cfg shared.Config) domain.Cache {
	if cfg.RedisAddr == "" {
		log.Info().Msg("REDIS_ADDR empty, live results are not cached")
		return nil
	}
	c := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, live results are not cached")
		_ = c.Close()
		return nil
	}
	return c
}
