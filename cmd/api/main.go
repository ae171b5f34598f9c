package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rentnest/rentnest/backend/internal/adapters/blob"
	"github.com/rentnest/rentnest/backend/internal/adapters/cache"
	"github.com/rentnest/rentnest/backend/internal/adapters/database"
	"github.com/rentnest/rentnest/backend/internal/adapters/identity"
	"github.com/rentnest/rentnest/backend/internal/api/handlers"
	"github.com/rentnest/rentnest/backend/internal/api/routes"
	"github.com/rentnest/rentnest/backend/internal/application/services"
	"github.com/rentnest/rentnest/backend/internal/domain/moderation"
	"github.com/rentnest/rentnest/backend/internal/domain/providers"
	"github.com/rentnest/rentnest/backend/internal/domain/repositories"
	"github.com/rentnest/rentnest/backend/internal/infrastructure/clients/postgres"
	"github.com/rentnest/rentnest/backend/internal/infrastructure/clients/redis"
	"github.com/rentnest/rentnest/backend/internal/infrastructure/observability"
	"github.com/rentnest/rentnest/backend/pkg/config"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("rentnest-api", cfg.Environment)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Redis is optional; without it listings are served straight from
	// the database
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var listingRepo repositories.ListingRepository = database.NewListingAdapter(pgClient)
	if cacheProvider != nil {
		listingRepo = database.NewCachedListingAdapter(listingRepo, cacheProvider)
	}

	var blobStore providers.BlobStore
	if cfg.BlobStore.BaseURL != "" {
		blobStore = blob.NewHTTPStore(&cfg.BlobStore)
	} else {
		log.Warn().Msg("no blob store configured, storing images in memory")
		blobStore = blob.NewMemoryStore()
	}

	engine := moderation.NewEngine(moderation.DefaultConfig())
	tokenVerifier := identity.NewJWTVerifier(cfg.Auth.JWTSecret)

	admissionService := services.NewAdmissionService(listingRepo, blobStore, engine)
	listingService := services.NewListingService(listingRepo, engine)

	listingHandler := handlers.NewListingHandler(admissionService, listingService)

	router := routes.NewRouter(listingHandler, tokenVerifier, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
