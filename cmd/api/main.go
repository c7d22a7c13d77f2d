package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "github.com/baileyjas4/MoniquesCritique-backend/internal/adapters/http_server"
	"github.com/baileyjas4/MoniquesCritique-backend/internal/adapters/observability"
	redisad "github.com/baileyjas4/MoniquesCritique-backend/internal/adapters/redis"
	"github.com/baileyjas4/MoniquesCritique-backend/internal/app"
	"github.com/baileyjas4/MoniquesCritique-backend/internal/shared"
	mongostore "github.com/baileyjas4/MoniquesCritique-backend/internal/storage/mongo"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	client, err := mongostore.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDatabase)
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}
	log.Info().Str("db", cfg.MongoDatabase).Msg("database connection ok")

	// deps
	places := mongostore.NewPlaceRepository(db)
	reviews := mongostore.NewReviewRepository(db)
	users := mongostore.NewUserRepository(db)
	favorites := mongostore.NewFavoriteRepository(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	auth := app.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL)
	ratings := app.NewRatingService(reviews, places, cache)
	handlers := &server.Handlers{
		Auth:            auth,
		Users:           app.NewUserService(users, reviews, favorites, places, auth),
		Places:          app.NewPlaceService(places, cache, cfg.CacheTTL),
		Reviews:         app.NewReviewService(reviews, places, users, ratings, cache),
		Favorites:       app.NewFavoritesService(favorites, places),
		Recommendations: app.NewRecommendationService(users, reviews, places),
	}

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(handlers)

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
