// Package usecase implements the outbox worker that delivers pending events.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/idvault/internal/database"
	"github.com/allisson/idvault/internal/outbox/domain"
)

// Config holds outbox worker configuration.
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// OutboxEventRepository defines outbox event repository operations.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	Update(ctx context.Context, event *domain.OutboxEvent) error
}

// EventProcessor delivers a single event. A returned error counts as a failed attempt.
type EventProcessor interface {
	Process(ctx context.Context, event *domain.OutboxEvent) error
}

// UseCase defines the outbox worker operations.
type UseCase interface {
	Start(ctx context.Context) error
	ProcessEvents(ctx context.Context) error
}

// OutboxUseCase polls the outbox table and hands pending events to an EventProcessor.
type OutboxUseCase struct {
	config         Config
	txManager      database.TxManager
	outboxRepo     OutboxEventRepository
	eventProcessor EventProcessor
	logger         *slog.Logger
	now            func() time.Time
}

// NewOutboxUseCase creates a new OutboxUseCase.
func NewOutboxUseCase(
	config Config,
	txManager database.TxManager,
	outboxRepo OutboxEventRepository,
	eventProcessor EventProcessor,
	logger *slog.Logger,
) *OutboxUseCase {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &OutboxUseCase{
		config:         config,
		txManager:      txManager,
		outboxRepo:     outboxRepo,
		eventProcessor: eventProcessor,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Start runs ProcessEvents every Interval until ctx is cancelled and then returns ctx.Err().
// Batch errors are logged and do not stop the loop.
func (uc *OutboxUseCase) Start(ctx context.Context) error {
	uc.logger.Info("starting outbox worker",
		slog.Duration("interval", uc.config.Interval),
		slog.Int("batch_size", uc.config.BatchSize),
		slog.Int("max_retries", uc.config.MaxRetries),
	)

	ticker := time.NewTicker(uc.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("stopping outbox worker")
			return ctx.Err()
		case <-ticker.C:
			if err := uc.ProcessEvents(ctx); err != nil {
				uc.logger.Error("failed to process outbox batch", slog.Any("error", err))
			}
		}
	}
}

// ProcessEvents locks one batch of pending events and processes it in a single transaction.
func (uc *OutboxUseCase) ProcessEvents(ctx context.Context) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		events, err := uc.outboxRepo.GetPendingEvents(ctx, uc.config.BatchSize)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}

		uc.logger.Debug("processing outbox batch", slog.Int("count", len(events)))

		for _, event := range events {
			if err := uc.eventProcessor.Process(ctx, event); err != nil {
				event.RecordFailure(err, uc.config.MaxRetries)
				uc.logger.Error("failed to process outbox event",
					slog.String("event_id", event.ID.String()),
					slog.String("event_type", event.EventType),
					slog.Int("retries", event.Retries),
					slog.String("status", string(event.Status)),
					slog.Any("error", err),
				)
			} else {
				event.MarkProcessed(uc.now())
			}

			if err := uc.outboxRepo.Update(ctx, event); err != nil {
				return err
			}
		}
		return nil
	})
}
