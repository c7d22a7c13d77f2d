package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	JWTSecret     string
	TokenTTL      time.Duration
	PlacesBase    string
	PlacesKey     string
	Workers       int
	IngestLimit   int
	CacheTTL      time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		MongoURI:      env("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: env("MONGO_DB", "critique"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		JWTSecret:     env("JWT_SECRET", ""),
		TokenTTL:      time.Duration(atoi("TOKEN_TTL_HOURS", 24*7)) * time.Hour,
		PlacesBase:    env("PLACES_BASE_URL", "https://places-api.foursquare.com/places"),
		PlacesKey:     env("PLACES_API_KEY", ""),
		Workers:       atoi("INGEST_WORKERS", 8),
		IngestLimit:   atoi("INGEST_LIMIT", 20),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
