package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/idvault/internal/outbox/domain"
)

type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

type mockOutboxEventRepository struct {
	mock.Mock
}

func (m *mockOutboxEventRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockOutboxEventRepository) GetPendingEvents(
	ctx context.Context,
	limit int,
) ([]*domain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OutboxEvent), args.Error(1)
}

func (m *mockOutboxEventRepository) Update(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type mockEventProcessor struct {
	mock.Mock
}

func (m *mockEventProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

var testConfig = Config{Interval: 10 * time.Millisecond, BatchSize: 10, MaxRetries: 3}

func newPendingEvent(eventType string) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   `{}`,
		Status:    domain.OutboxEventStatusPending,
	}
}

func TestOutboxUseCase_ProcessEvents(t *testing.T) {
	ctx := context.Background()
	processedAt := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success_MarksProcessed", func(t *testing.T) {
		txManager := &mockTxManager{}
		repo := &mockOutboxEventRepository{}
		processor := &mockEventProcessor{}
		uc := NewOutboxUseCase(testConfig, txManager, repo, processor, nil)
		uc.now = func() time.Time { return processedAt }

		first := newPendingEvent("identity_document.registered")
		second := newPendingEvent("identity_document.deleted")

		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repo.On("GetPendingEvents", ctx, 10).Return([]*domain.OutboxEvent{first, second}, nil).Once()
		processor.On("Process", ctx, first).Return(nil).Once()
		processor.On("Process", ctx, second).Return(nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(e *domain.OutboxEvent) bool {
			return e.Status == domain.OutboxEventStatusProcessed && e.ProcessedAt.Equal(processedAt)
		})).Return(nil).Twice()

		require.NoError(t, uc.ProcessEvents(ctx))
		repo.AssertExpectations(t)
		processor.AssertExpectations(t)
	})

	t.Run("Success_NoEvents", func(t *testing.T) {
		txManager := &mockTxManager{}
		repo := &mockOutboxEventRepository{}
		processor := &mockEventProcessor{}
		uc := NewOutboxUseCase(testConfig, txManager, repo, processor, nil)

		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repo.On("GetPendingEvents", ctx, 10).Return([]*domain.OutboxEvent{}, nil).Once()

		require.NoError(t, uc.ProcessEvents(ctx))
		processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Failure_IncrementsRetries", func(t *testing.T) {
		txManager := &mockTxManager{}
		repo := &mockOutboxEventRepository{}
		processor := &mockEventProcessor{}
		uc := NewOutboxUseCase(testConfig, txManager, repo, processor, nil)

		event := newPendingEvent("identity_document.registered")

		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repo.On("GetPendingEvents", ctx, 10).Return([]*domain.OutboxEvent{event}, nil).Once()
		processor.On("Process", ctx, event).Return(errors.New("downstream unavailable")).Once()
		repo.On("Update", ctx, event).Return(nil).Once()

		require.NoError(t, uc.ProcessEvents(ctx))
		assert.Equal(t, 1, event.Retries)
		assert.Equal(t, domain.OutboxEventStatusPending, event.Status)
		require.NotNil(t, event.LastError)
		assert.Equal(t, "downstream unavailable", *event.LastError)
		assert.Nil(t, event.ProcessedAt)
	})

	t.Run("Failure_MarksFailedAtMaxRetries", func(t *testing.T) {
		txManager := &mockTxManager{}
		repo := &mockOutboxEventRepository{}
		processor := &mockEventProcessor{}
		uc := NewOutboxUseCase(testConfig, txManager, repo, processor, nil)

		event := newPendingEvent("identity_document.registered")
		event.Retries = 2

		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repo.On("GetPendingEvents", ctx, 10).Return([]*domain.OutboxEvent{event}, nil).Once()
		processor.On("Process", ctx, event).Return(errors.New("still failing")).Once()
		repo.On("Update", ctx, event).Return(nil).Once()

		require.NoError(t, uc.ProcessEvents(ctx))
		assert.Equal(t, 3, event.Retries)
		assert.Equal(t, domain.OutboxEventStatusFailed, event.Status)
	})

	t.Run("Error_GetPendingEvents", func(t *testing.T) {
		txManager := &mockTxManager{}
		repo := &mockOutboxEventRepository{}
		processor := &mockEventProcessor{}
		uc := NewOutboxUseCase(testConfig, txManager, repo, processor, nil)
		dbErr := errors.New("connection refused")

		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repo.On("GetPendingEvents", ctx, 10).Return(nil, dbErr).Once()

		assert.Equal(t, dbErr, uc.ProcessEvents(ctx))
	})

	t.Run("Error_UpdateAbortsBatch", func(t *testing.T) {
		txManager := &mockTxManager{}
		repo := &mockOutboxEventRepository{}
		processor := &mockEventProcessor{}
		uc := NewOutboxUseCase(testConfig, txManager, repo, processor, nil)
		dbErr := errors.New("update failed")

		first := newPendingEvent("identity_document.registered")
		second := newPendingEvent("identity_document.registered")

		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		repo.On("GetPendingEvents", ctx, 10).Return([]*domain.OutboxEvent{first, second}, nil).Once()
		processor.On("Process", ctx, first).Return(nil).Once()
		repo.On("Update", ctx, first).Return(dbErr).Once()

		assert.Equal(t, dbErr, uc.ProcessEvents(ctx))
		processor.AssertNotCalled(t, "Process", ctx, second)
	})

	t.Run("Error_BeginTx", func(t *testing.T) {
		txManager := &mockTxManager{}
		repo := &mockOutboxEventRepository{}
		processor := &mockEventProcessor{}
		uc := NewOutboxUseCase(testConfig, txManager, repo, processor, nil)
		txErr := errors.New("begin failed")

		txManager.On("WithTx", ctx, mock.Anything).Return(txErr).Once()

		assert.Equal(t, txErr, uc.ProcessEvents(ctx))
		repo.AssertNotCalled(t, "GetPendingEvents", mock.Anything, mock.Anything)
	})
}

func TestOutboxUseCase_Start(t *testing.T) {
	t.Run("ReturnsOnCancelledContext", func(t *testing.T) {
		uc := NewOutboxUseCase(testConfig, &mockTxManager{}, &mockOutboxEventRepository{}, &mockEventProcessor{}, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, uc.Start(ctx), context.Canceled)
	})

	t.Run("PollsUntilCancelled", func(t *testing.T) {
		txManager := &mockTxManager{}
		repo := &mockOutboxEventRepository{}
		uc := NewOutboxUseCase(testConfig, txManager, repo, &mockEventProcessor{}, nil)

		ctx, cancel := context.WithCancel(context.Background())
		polled := make(chan struct{}, 1)

		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		repo.On("GetPendingEvents", mock.Anything, 10).
			Run(func(mock.Arguments) {
				select {
				case polled <- struct{}{}:
				default:
				}
			}).
			Return([]*domain.OutboxEvent{}, nil)

		done := make(chan error, 1)
		go func() { done <- uc.Start(ctx) }()

		select {
		case <-polled:
		case <-time.After(time.Second):
			t.Fatal("worker did not poll")
		}
		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("worker did not stop")
		}
	})

	t.Run("KeepsRunningAfterBatchError", func(t *testing.T) {
		txManager := &mockTxManager{}
		uc := NewOutboxUseCase(testConfig, txManager, &mockOutboxEventRepository{}, &mockEventProcessor{}, nil)

		ctx, cancel := context.WithCancel(context.Background())
		calls := make(chan struct{}, 2)

		txManager.On("WithTx", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				select {
				case calls <- struct{}{}:
				default:
				}
			}).
			Return(errors.New("database unavailable"))

		done := make(chan error, 1)
		go func() { done <- uc.Start(ctx) }()

		for range 2 {
			select {
			case <-calls:
			case <-time.After(time.Second):
				t.Fatal("worker stopped polling after an error")
			}
		}
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})
}
