package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/PedroArthur06/revenue-aggregator/internal/config"
	"github.com/PedroArthur06/revenue-aggregator/internal/infra"
	"github.com/PedroArthur06/revenue-aggregator/internal/router"
	"github.com/PedroArthur06/revenue-aggregator/internal/service"
	"github.com/PedroArthur06/revenue-aggregator/internal/snapshot"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	catalog, err := infra.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load voucher catalog")
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.SnapshotBackend).Msg("failed to open snapshot store")
	}

	// Hydrates the current report from the persisted snapshot; an absent or
	// old-schema blob starts the day fresh instead of failing.
	svc, err := service.NewClosingService(context.Background(), store, catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hydrate closing report")
	}

	r := router.New(cfg, svc, store, catalog)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("closing backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

// newStore selects the snapshot backend. The report codec does not care
// which one holds the blob.
func newStore(cfg *config.Config) (snapshot.Store, error) {
	switch cfg.SnapshotBackend {
	case "redis":
		rdb, err := infra.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return snapshot.NewRedisStore(rdb), nil
	case "postgres":
		db, err := infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return snapshot.NewGormStore(db)
	case "memory":
		return snapshot.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("SNAPSHOT_BACKEND desconhecido: %q", cfg.SnapshotBackend)
	}
}
