package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"golang.org/x/sync/errgroup"

	"github.com/morsafarhq/morsafar/cockroach"
	"github.com/morsafarhq/morsafar/cockroach/migrator"
	"github.com/morsafarhq/morsafar/config"
	"github.com/morsafarhq/morsafar/pubsub"
	"github.com/morsafarhq/morsafar/service"
	"github.com/morsafarhq/morsafar/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	errLogger := slog.New(charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
	}))
	infoLogger := slog.New(charmlog.NewWithOptions(os.Stdout, charmlog.Options{
		ReportTimestamp: true,
	}))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := pgxpool.New(ctx, cfg.CockroachURL)
	if err != nil {
		return fmt.Errorf("open cockroach connection pool: %w", err)
	}

	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		return fmt.Errorf("ping cockroach: %w", err)
	}

	migrationStart := time.Now()
	infoLogger.Info("starting cockroach migrations")

	if err := migrator.Migrate(ctx, dbPool, cockroach.MigrationsFS); err != nil {
		return fmt.Errorf("migrate cockroach schema: %w", err)
	}

	infoLogger.Info("finished cockroach migrations", "took", time.Since(migrationStart))

	var ps pubsub.PubSub = pubsub.NewInProcess()
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			return fmt.Errorf("connect to nats: %w", err)
		}

		defer nc.Close()

		ps = pubsub.NewNATS(nc)
		infoLogger.Info("using nats pub/sub", "url", cfg.NATSURL)
	}

	svc := service.New(&service.Config{
		Cockroach:         cockroach.New(dbPool),
		PubSub:            ps,
		BaseCtx:           context.Background(),
		BackgroundTimeout: cfg.BackgroundTimeout,
		CodeCacheSize:     cfg.CodeCacheSize,
		CodeCacheTTL:      cfg.CodeCacheTTL,
	})

	go func() {
		for err := range svc.Errs() {
			errLogger.Error("service error", "error", err)
		}
	}()

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: &web.Handler{
			Service: svc,
			Logger:  errLogger,
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		infoLogger.Info("starting morsafar server", "url", fmt.Sprintf("http://localhost:%d", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("start morsafar server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		infoLogger.Info("shutting down morsafar server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown morsafar server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	return svc.Close()
}
