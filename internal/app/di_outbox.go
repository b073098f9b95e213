package app

import (
	"fmt"

	outboxRepository "github.com/allisson/idvault/internal/outbox/repository"
	outboxUseCase "github.com/allisson/idvault/internal/outbox/usecase"
)

// OutboxRepository returns the outbox event repository matching DB_DRIVER.
func (c *Container) OutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	var err error
	c.outboxRepositoryInit.Do(func() {
		c.outboxRepository, err = c.initOutboxRepository()
		if err != nil {
			c.setInitError("outboxRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("outboxRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.outboxRepository, nil
}

// EventProcessor returns the processor that delivers outbox events.
func (c *Container) EventProcessor() outboxUseCase.EventProcessor {
	c.eventProcessorInit.Do(func() {
		c.eventProcessor = outboxUseCase.NewDefaultEventProcessor(c.Logger())
	})
	return c.eventProcessor
}

// OutboxUseCase returns the outbox worker.
func (c *Container) OutboxUseCase() (outboxUseCase.UseCase, error) {
	var err error
	c.outboxUseCaseInit.Do(func() {
		c.outboxUseCase, err = c.initOutboxUseCase()
		if err != nil {
			c.setInitError("outboxUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("outboxUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.outboxUseCase, nil
}

func (c *Container) initOutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for outbox repository: %w", err)
	}

	return repositoryFor(c.config.DBDriver,
		func() outboxUseCase.OutboxEventRepository { return outboxRepository.NewPostgreSQLOutboxEventRepository(db) },
		func() outboxUseCase.OutboxEventRepository { return outboxRepository.NewMySQLOutboxEventRepository(db) },
	)
}

func (c *Container) initOutboxUseCase() (outboxUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for outbox use case: %w", err)
	}

	return outboxUseCase.NewOutboxUseCase(
		outboxUseCase.Config{
			Interval:   c.config.WorkerInterval,
			BatchSize:  c.config.WorkerBatchSize,
			MaxRetries: c.config.WorkerMaxRetries,
		},
		txManager,
		outboxRepo,
		c.EventProcessor(),
		c.Logger(),
	), nil
}
