package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/idvault/internal/app"
	"github.com/allisson/idvault/internal/config"
)

const shutdownTimeout = 30 * time.Second

// service is anything RunServer starts in the background and stops on shutdown.
type service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// RunServer starts the API server, the metrics server and the outbox worker, and
// blocks until SIGINT/SIGTERM or until one of them fails. Either way every component
// is shut down before it returns.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	defer closeContainer(container, logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := container.HTTPServer(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	services := []service{server}

	if cfg.MetricsEnabled {
		metricsServer, err := container.MetricsServer()
		if err != nil {
			return fmt.Errorf("failed to initialize metrics server: %w", err)
		}
		services = append(services, metricsServer)
	}

	worker, err := container.OutboxUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize outbox worker: %w", err)
	}

	return runServices(ctx, logger, services, worker.Start)
}

// runServices runs every service and the worker until ctx is cancelled or one of them
// returns an error, then shuts the services down.
func runServices(
	ctx context.Context,
	logger *slog.Logger,
	services []service,
	worker func(ctx context.Context) error,
) error {
	group, groupCtx := errgroup.WithContext(ctx)

	for _, svc := range services {
		group.Go(func() error {
			return svc.Start(groupCtx)
		})
	}

	group.Go(func() error {
		if err := worker(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("outbox worker error: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		if ctx.Err() != nil {
			logger.Info("shutdown signal received")
		} else {
			logger.Error("component failed, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, svc := range services {
			if err := svc.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	return group.Wait()
}
