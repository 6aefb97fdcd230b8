package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/semizhon/hh-kz-cad/internal/api"
	"github.com/semizhon/hh-kz-cad/internal/archive"
	"github.com/semizhon/hh-kz-cad/internal/cache"
	"github.com/semizhon/hh-kz-cad/internal/cleaner"
	"github.com/semizhon/hh-kz-cad/internal/config"
	"github.com/semizhon/hh-kz-cad/internal/enrich"
	"github.com/semizhon/hh-kz-cad/internal/hh"
	"github.com/semizhon/hh-kz-cad/internal/logger"
	"github.com/semizhon/hh-kz-cad/internal/search"
	"github.com/semizhon/hh-kz-cad/internal/snapshot"
)

const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 60 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.Load()
	log := logger.New()
	defer log.Sync()

	log.Infow("starting HH CAD jobs service", "port", cfg.Server.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := buildCacheStore(ctx, cfg, log)
	if err != nil {
		log.Fatalw("cache init failed", "error", err)
	}

	client := hh.NewClient(cfg.HH.BaseURL, cfg.HH.UserAgent)
	enricher := enrich.New(client, store)
	aggregator := search.New(client, enricher, cleaner.New(), log)
	snapshots := snapshot.NewStore(cfg.Snapshot.Dir)

	archiver, err := buildArchiver(ctx, cfg, log)
	if err != nil {
		log.Fatalw("archive init failed", "error", err)
	}

	handler := api.NewHandler(aggregator, store, snapshots, archiver, log)

	router := gin.New()
	router.Use(gin.Recovery())
	router.LoadHTMLGlob("templates/*.html")
	api.SetupRoutes(router, handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()
	log.Infow("listening", "addr", srv.Addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Info("shutdown signal received, stopping")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnw("forced shutdown", "error", err)
	}
	log.Info("graceful shutdown complete")
}

func buildCacheStore(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		log.Infow("cache backend ready", "backend", "redis", "addr", cfg.Redis.Addr)
		return cache.NewRedis(rdb, "hhcad"), nil
	case "memory", "":
		log.Infow("cache backend ready", "backend", "memory")
		return cache.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func buildArchiver(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (archive.Archiver, error) {
	switch cfg.Archive.Backend {
	case "elasticsearch":
		es, err := archive.NewElasticsearch(cfg.Archive.ESAddresses, cfg.Archive.ESIndex, log)
		if err != nil {
			return nil, err
		}
		if err := es.EnsureIndex(ctx); err != nil {
			log.Warnw("ensure index failed", "error", err)
		}
		log.Infow("archive backend ready", "backend", "elasticsearch", "index", cfg.Archive.ESIndex)
		return es, nil
	case "postgres":
		pg, err := archive.NewPostgres(cfg.Archive.PostgresURL, cfg.Archive.PostgresTable, log)
		if err != nil {
			return nil, err
		}
		log.Infow("archive backend ready", "backend", "postgres", "table", cfg.Archive.PostgresTable)
		return pg, nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown archive backend %q", cfg.Archive.Backend)
	}
}
