package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	SourceStatic = "static"
	SourceLive   = "live"

	CatalogBuiltin = "builtin"
	CatalogMySQL   = "mysql"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	HTTPTimeout time.Duration
	MetricsAddr string

	DataSource      string
	HotelAPIBase    string
	HotelAPIKey     string
	HotelAPIRPS     int
	HotelAPITimeout time.Duration
	LiveBudget      time.Duration

	CatalogSource string
	MySQLDSN      string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	CORSOrigins []string
	SeedWorkers int
}

// Load reads the environment, after an optional .env file in the working directory.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not read .env file")
	}

	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		HTTPTimeout: time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		MetricsAddr: env("METRICS_ADDR", ":9100"),

		DataSource:      strings.ToLower(env("DATA_SOURCE", SourceStatic)),
		HotelAPIBase:    env("HOTEL_API_BASE_URL", "https://hotel-api-qndt.onrender.com"),
		HotelAPIKey:     env("HOTEL_API_KEY", ""),
		HotelAPIRPS:     atoi("HOTEL_API_RPS", 5),
		HotelAPITimeout: time.Duration(atoi("HOTEL_API_TIMEOUT_SECONDS", 10)) * time.Second,
		LiveBudget:      time.Duration(atoi("LIVE_BUDGET_SECONDS", 8)) * time.Second,

		CatalogSource: strings.ToLower(env("CATALOG_SOURCE", CatalogBuiltin)),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotel_search?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),

		RedisAddr: env("REDIS_ADDR", ""),
		RedisDB:   atoi("REDIS_DB", 0),
		RedisPass: env("REDIS_PASSWORD", ""),
		CacheTTL:  time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,

		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
		SeedWorkers: atoi("SEED_WORKERS", 4),
	}
	if c.DataSource != SourceStatic && c.DataSource != SourceLive {
		log.Warn().Str("value", c.DataSource).Msg("unknown DATA_SOURCE, using static")
		c.DataSource = SourceStatic
	}
	if c.CatalogSource != CatalogBuiltin && c.CatalogSource != CatalogMySQL {
		log.Warn().Str("value", c.CatalogSource).Msg("unknown CATALOG_SOURCE, using builtin")
		c.CatalogSource = CatalogBuiltin
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 15 * time.Second
	}
	// the static fallback has to be written before the router gives up
	if c.LiveBudget <= 0 || c.LiveBudget >= c.HTTPTimeout {
		budget := c.HTTPTimeout * 2 / 3
		log.Warn().Dur("live_budget", c.LiveBudget).Dur("http_timeout", c.HTTPTimeout).Dur("using", budget).
			Msg("LIVE_BUDGET_SECONDS must be positive and below HTTP_TIMEOUT_SECONDS")
		c.LiveBudget = budget
	}
	if c.DataSource == SourceLive && c.HotelAPIKey == "" {
		log.Warn().Msg("HOTEL_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
