// Package main is the entry point for the Backoffice server.
// Backoffice is an administration API over a storefront REST service, with
// a local fallback store that keeps the dashboard usable during outages.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mertkaya-dev/backoffice/internal/cache"
	memorycache "github.com/mertkaya-dev/backoffice/internal/cache/memory"
	rediscache "github.com/mertkaya-dev/backoffice/internal/cache/redis"
	"github.com/mertkaya-dev/backoffice/internal/config"
	"github.com/mertkaya-dev/backoffice/internal/fallback"
	"github.com/mertkaya-dev/backoffice/internal/fallback/postgres"
	"github.com/mertkaya-dev/backoffice/internal/fallback/sqlite"
	"github.com/mertkaya-dev/backoffice/internal/handler"
	"github.com/mertkaya-dev/backoffice/internal/metrics"
	"github.com/mertkaya-dev/backoffice/internal/service"
	"github.com/mertkaya-dev/backoffice/internal/storefront"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting backoffice server")

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
	logger.Info().Msg("server stopped")
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newFallbackStore(ctx, cfg.Fallback, logger)
	if err != nil {
		return fmt.Errorf("init fallback store: %w", err)
	}
	defer store.Close()

	sessionCache, err := newSessionCache(ctx, cfg.Session, logger)
	if err != nil {
		return fmt.Errorf("init session cache: %w", err)
	}
	defer sessionCache.Close()

	m := metrics.New()
	client := storefront.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, logger, m)

	router := handler.NewRouter(handler.RouterConfig{
		UserService:    service.NewUserService(client, store, m, logger),
		ProductService: service.NewProductService(client, logger),
		OrderService:   service.NewOrderService(client, client, store, m, logger),
		SessionService: service.NewSessionService(sessionCache, cfg.Session.TTL, logger),
		Cookie: handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			TTL:    cfg.Session.TTL,
		},
		Logger: logger,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, m.Handler())
		metricsSrv = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: mux,
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if metricsSrv != nil {
		g.Go(func() error {
			logger.Info().Str("addr", metricsSrv.Addr).Str("path", cfg.Metrics.Path).Msg("metrics server listening")
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if metricsSrv != nil {
			_ = metricsSrv.Shutdown(shutdownCtx)
		}
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newFallbackStore builds the fallback store selected by the configuration.
func newFallbackStore(ctx context.Context, cfg config.FallbackConfig, logger zerolog.Logger) (fallback.Store, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.New(ctx, sqlite.Config{
			Path:            cfg.Path,
			JournalMode:     cfg.JournalMode,
			BusyTimeout:     cfg.BusyTimeout,
			SynchronousMode: cfg.SynchronousMode,
		}, logger)
	case "postgres":
		return postgres.New(ctx, postgres.Config{
			Host:            cfg.Host,
			Port:            cfg.Port,
			User:            cfg.User,
			Password:        cfg.Password,
			Database:        cfg.Database,
			SSLMode:         cfg.SSLMode,
			MaxOpenConns:    cfg.MaxOpenConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		}, logger)
	case "memory":
		return fallback.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown fallback driver %q", cfg.Driver)
	}
}

// newSessionCache builds the session cache selected by the configuration.
func newSessionCache(ctx context.Context, cfg config.SessionConfig, logger zerolog.Logger) (cache.Cache, error) {
	switch cfg.Driver {
	case "redis":
		return rediscache.NewCache(ctx, rediscache.Config{
			Addr:        cfg.Redis.Addr(),
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			PoolSize:    cfg.Redis.PoolSize,
			DialTimeout: cfg.Redis.DialTimeout,
		}, logger)
	case "memory":
		return memorycache.NewCache(), nil
	default:
		return nil, fmt.Errorf("unknown session cache driver %q", cfg.Driver)
	}
}

func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.TimeFormat != "" {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}

	var out io.Writer = os.Stderr
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
