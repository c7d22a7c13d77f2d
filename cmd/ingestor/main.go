package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/baileyjas4/MoniquesCritique-backend/internal/adapters/observability"
	"github.com/baileyjas4/MoniquesCritique-backend/internal/adapters/placesource"
	redisad "github.com/baileyjas4/MoniquesCritique-backend/internal/adapters/redis"
	"github.com/baileyjas4/MoniquesCritique-backend/internal/app"
	"github.com/baileyjas4/MoniquesCritique-backend/internal/domain"
	"github.com/baileyjas4/MoniquesCritique-backend/internal/shared"
	mongostore "github.com/baileyjas4/MoniquesCritique-backend/internal/storage/mongo"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.PlacesBase).
		Int("workers", cfg.Workers).
		Int("limit", cfg.IngestLimit).
		Msg("ingestor starting")

	client, err := mongostore.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDatabase)
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}
	log.Info().Msg("db ping ok")

	places := mongostore.NewPlaceRepository(db)

	source, err := placesource.New(cfg.PlacesBase, cfg.PlacesKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize places client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	ing := app.NewIngestionService(source, places, cache)
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, seed := range shared.SeedSearches {
		seed := seed

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(seed shared.SeedSearch) {
			defer wg.Done()
			defer sem.Release(int64(1))

			n, err := ing.IngestSearch(ctx, domain.PlaceSourceQuery{
				Query: seed.Query,
				Near:  seed.Near,
				Limit: cfg.IngestLimit,
			})
			if err != nil {
				log.Warn().Str("query", seed.Query).Str("near", seed.Near).Err(err).Msg("ingest failed")
				return
			}
			log.Info().Str("query", seed.Query).Str("near", seed.Near).Int("upserted", n).Msg("ingest ok")
		}(seed)
	}

	wg.Wait()
	log.Info().Msg("ingestion completed")
}
