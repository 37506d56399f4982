// ABOUTME: Main entry point for the Bliki Feed API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flags "github.com/jessevdk/go-flags"

	"bliki-feed-api/api"
	"bliki-feed-api/api/handlers"
	"bliki-feed-api/core/blikifeed"
	"bliki-feed-api/core/interfaces"
	"bliki-feed-api/infrastructure/cache/memory"
	"bliki-feed-api/infrastructure/cache/redis"
	"bliki-feed-api/infrastructure/cache/sqlite"
	"bliki-feed-api/infrastructure/logger/structured"
	"bliki-feed-api/infrastructure/storage/sqldb"
	"bliki-feed-api/pkg/config"
)

type options struct {
	Config string `short:"c" long:"config" env:"CONFIG_FILE" default:"config.yaml" description:"Path to the YAML configuration file"`
	Port   string `short:"p" long:"port" description:"Override the HTTP port"`
	Watch  bool   `long:"watch" description:"Reload feed settings when the configuration file changes"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(opts.Config)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if opts.Port != "" {
		cfg.Server.Port = opts.Port
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := structured.New(structured.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		File:      cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	})
	logger.Info("Starting Bliki Feed API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"db_driver":  cfg.Database.Driver,
		"site":       cfg.Site.Name,
	})

	store, err := sqldb.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open wiki database: %v", err)
	}
	defer store.Close()

	cache, closeCache := newCache(cfg.Cache, logger)
	defer closeCache()

	deps := interfaces.Dependencies{
		Store:  store,
		Cache:  cache,
		Logger: logger,
	}
	feedService := blikifeed.NewService(deps, cfg.Site, cfg.Feed)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.Watch {
		go func() {
			err := config.Watch(ctx, opts.Config, logger, func(next *config.Config) {
				feedService.UpdateFeedConfig(next.Feed)
			})
			if err != nil {
				logger.Error("Configuration watcher stopped", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}()
	}

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:     logger,
		RateLimit:  cfg.Server.RateLimit,
		RateWindow: cfg.Server.RateWindow,
	})

	handlers.NewBlikiFeedHandler(feedService).RegisterRoutes(humaAPI)
	handlers.NewHealthHandler(store).RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

// newCache creates the configured render cache. Redis falls back to memory
// when the server cannot be reached.
func newCache(cfg config.CacheConfig, logger interfaces.Logger) (interfaces.Cache, func()) {
	switch cfg.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			break
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
		})
		return redisCache, func() { _ = redisCache.Close() }

	case "sqlite":
		sqliteCache, err := sqlite.NewSQLiteCache(cfg.SQLite)
		if err != nil {
			logger.Error("Failed to create SQLite cache, falling back to memory", map[string]interface{}{
				"path":  cfg.SQLite.Path,
				"error": err.Error(),
			})
			break
		}
		fields := map[string]interface{}{"path": cfg.SQLite.Path}
		if stats, err := sqliteCache.Stats(context.Background()); err == nil {
			fields["entries"] = stats.Entries
			fields["expired"] = stats.Expired
		}
		logger.Info("Using SQLite cache", fields)
		return sqliteCache, func() { _ = sqliteCache.Close() }
	}

	logger.Info("Using memory cache", nil)
	return memory.NewMemoryCache(cfg.Memory), func() {}
}
