package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/zhdict/internal/adapter/postgres"
	"github.com/heartmarshall/zhdict/internal/config"
	"github.com/heartmarshall/zhdict/internal/lexicon"
	"github.com/heartmarshall/zhdict/internal/service/dictionary"
	"github.com/heartmarshall/zhdict/internal/transport/middleware"
)

// Run is the application entry point. It loads configuration, builds the
// dictionary engine in the background, serves the HTTP API and shuts down
// gracefully on SIGINT or SIGTERM.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		versionAttrs(),
		slog.String("log_level", cfg.Log.Level),
		slog.String("source", cfg.Dictionary.Source),
		slog.String("converter", cfg.Dictionary.Converter),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		pool *pgxpool.Pool
		db   postgres.Querier
		ping pinger
	)
	if cfg.Database.Enabled {
		pool, err = postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close()
		db, ping = pool, pool
		logger.Info("database connected", slog.Int("max_conns", int(cfg.Database.MaxConns)))
	}

	src, err := newSource(cfg.Dictionary, db)
	if err != nil {
		return err
	}
	if cfg.Dictionary.Source == config.SourceAuto && src.Name() == "embedded" {
		logger.Warn("no CC-CEDICT file found, serving the bundled sample dictionary",
			slog.String("cedict_path", cfg.Dictionary.CedictPath),
		)
	}
	conv, err := newConverter(cfg.Dictionary.Converter)
	if err != nil {
		return err
	}

	gate := lexicon.DefaultGate()
	svc, err := dictionary.NewService(logger, gate, conv, cfg.Dictionary)
	if err != nil {
		return fmt.Errorf("dictionary service: %w", err)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      newHandler(logger, cfg, svc, gate, ping, limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	opts := lexicon.Options{PinyinFallbackEnglish: cfg.Dictionary.PinyinFallbackEnglish}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return initEngine(gctx, logger, gate, src, opts, cfg.Dictionary.InitTimeout)
	})

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application stopped with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("application stopped")
	return nil
}
