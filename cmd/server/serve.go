package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"scoutWorkspace/internal/config"
	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/application/usecase"
	"scoutWorkspace/internal/modules/workspace/infrastructure"
	transport "scoutWorkspace/internal/modules/workspace/interface"
	"scoutWorkspace/internal/platform/broker"
	"scoutWorkspace/internal/shared/auth"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and websocket gateway",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logFile, logger, err := setupLogging(cfg.Logging, os.Stdout)
	if err != nil {
		return err
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rest := newRESTClient(cfg)
	catalog, closeCache := buildCatalog(cfg, rest)
	defer closeCache()

	savedSearches := infrastructure.NewSavedSearchHTTPClient(rest)
	shortlists := infrastructure.NewShortlistHTTPClient(rest)

	var activity port.ActivityPublisher
	publisher := broker.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.ActivityTopic)
	if publisher != nil {
		activity = publisher
		defer func() {
			if err := publisher.Close(); err != nil {
				slog.Warn("kafka publisher close failed", slog.Any("error", err))
			}
		}()
	}
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("topic", cfg.Kafka.ActivityTopic))

	hub := infrastructure.NewHub()
	metrics := infrastructure.PrometheusMetrics{}
	registry := usecase.NewWorkspaceRegistry(func(session usecase.Session) *usecase.Workspace {
		return usecase.NewWorkspace(session, usecase.WorkspaceDeps{
			Catalog:          catalog,
			SavedSearches:    savedSearches,
			Shortlists:       shortlists,
			Broadcaster:      hub,
			Activity:         activity,
			Metrics:          metrics,
			Logger:           logger,
			PageSize:         cfg.Workspace.PageSize,
			DefaultShortlist: cfg.Workspace.DefaultShortlist,
		})
	})

	handlers := infrastructure.NewActivityHandlerRegistry()
	handlers.Register(usecase.NewActivitySync(registry, logger))
	groupID := cfg.Kafka.GroupID
	if groupID == "" {
		groupID = "scout-workspace-" + uuid.NewString()
	}
	consumerDone := broker.StartActivityConsumer(ctx, handlers, cfg.Kafka.Brokers, groupID, cfg.Kafka.ActivityTopic)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	validator := auth.NewJWTValidator(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey)
	transport.RegisterRoutes(e, transport.RouteDeps{
		Hub:        hub,
		Resolver:   transport.NewSessionResolver(validator, registry),
		Registry:   registry,
		SendBuffer: cfg.Workspace.SendBuffer,
	})

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown incomplete", slog.Any("error", err))
	}
	<-consumerDone
	return nil
}

func newRESTClient(cfg *config.Config) *infrastructure.RESTClient {
	return infrastructure.NewRESTClient(cfg.REST.BaseURL, cfg.REST.Timeout, nil).
		WithRateLimit(cfg.REST.RateLimit, cfg.REST.RateBurst)
}

// buildCatalog returns the catalog fetcher, wrapped in the Redis page cache
// when REDIS_ADDR is set.
func buildCatalog(cfg *config.Config, rest *infrastructure.RESTClient) (port.CatalogFetcher, func()) {
	var catalog port.CatalogFetcher = infrastructure.NewCatalogHTTPClient(rest)
	if cfg.Redis.Addr == "" {
		return catalog, func() {}
	}
	client := infrastructure.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	slog.Info("catalog page cache enabled", slog.String("addr", cfg.Redis.Addr), slog.Duration("ttl", cfg.Redis.CacheTTL))
	return infrastructure.NewRedisPageCache(catalog, client, cfg.Redis.CacheTTL), func() {
		if err := client.Close(); err != nil {
			slog.Warn("redis close failed", slog.Any("error", err))
		}
	}
}
