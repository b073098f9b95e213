package app

import (
	"fmt"

	identityHTTP "github.com/allisson/idvault/internal/identity/http"
	identityRepository "github.com/allisson/idvault/internal/identity/repository"
	identityService "github.com/allisson/idvault/internal/identity/service"
	identityUseCase "github.com/allisson/idvault/internal/identity/usecase"
)

// FingerprintService returns the SHA-256 fingerprint service.
func (c *Container) FingerprintService() identityService.FingerprintService {
	c.fingerprintServiceInit.Do(func() {
		c.fingerprintService = identityService.NewSHA256FingerprintService()
	})
	return c.fingerprintService
}

// IdentifierCipher returns the base64 identifier cipher over BlockCipher.
func (c *Container) IdentifierCipher() (identityService.IdentifierCipher, error) {
	var err error
	c.identifierCipherInit.Do(func() {
		c.identifierCipher, err = c.initIdentifierCipher()
		if err != nil {
			c.setInitError("identifierCipher", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("identifierCipher"); storedErr != nil {
		return nil, storedErr
	}
	return c.identifierCipher, nil
}

// IdentityDocumentRepository returns the repository matching DB_DRIVER.
func (c *Container) IdentityDocumentRepository() (identityUseCase.IdentityDocumentRepository, error) {
	var err error
	c.identityDocumentRepoInit.Do(func() {
		c.identityDocumentRepo, err = c.initIdentityDocumentRepository()
		if err != nil {
			c.setInitError("identityDocumentRepo", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("identityDocumentRepo"); storedErr != nil {
		return nil, storedErr
	}
	return c.identityDocumentRepo, nil
}

// IdentityDocumentUseCase returns the identity document use case, wrapped with metrics when enabled.
func (c *Container) IdentityDocumentUseCase() (identityUseCase.IdentityDocumentUseCase, error) {
	var err error
	c.identityDocumentUseCaseInit.Do(func() {
		c.identityDocumentUseCase, err = c.initIdentityDocumentUseCase()
		if err != nil {
			c.setInitError("identityDocumentUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("identityDocumentUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.identityDocumentUseCase, nil
}

// IdentityDocumentHandler returns the HTTP handler for identity documents.
func (c *Container) IdentityDocumentHandler() (*identityHTTP.IdentityDocumentHandler, error) {
	var err error
	c.identityDocumentHandlerInit.Do(func() {
		c.identityDocumentHandler, err = c.initIdentityDocumentHandler()
		if err != nil {
			c.setInitError("identityDocumentHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("identityDocumentHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.identityDocumentHandler, nil
}

func (c *Container) initIdentifierCipher() (identityService.IdentifierCipher, error) {
	blockCipher, err := c.BlockCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get block cipher for identifier cipher: %w", err)
	}
	return identityService.NewIdentifierCipher(blockCipher), nil
}

func (c *Container) initIdentityDocumentRepository() (identityUseCase.IdentityDocumentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for identity document repository: %w", err)
	}

	return repositoryFor(c.config.DBDriver,
		func() identityUseCase.IdentityDocumentRepository {
			return identityRepository.NewPostgreSQLIdentityDocumentRepository(db)
		},
		func() identityUseCase.IdentityDocumentRepository {
			return identityRepository.NewMySQLIdentityDocumentRepository(db)
		},
	)
}

func (c *Container) initIdentityDocumentUseCase() (identityUseCase.IdentityDocumentUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for identity document use case: %w", err)
	}

	documentRepo, err := c.IdentityDocumentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity document repository for identity document use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for identity document use case: %w", err)
	}

	identifierCipher, err := c.IdentifierCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get identifier cipher for identity document use case: %w", err)
	}

	useCase := identityUseCase.NewIdentityDocumentUseCase(
		txManager,
		documentRepo,
		outboxRepo,
		identifierCipher,
		c.FingerprintService(),
	)

	if !c.config.MetricsEnabled {
		return useCase, nil
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for identity document use case: %w", err)
	}
	return identityUseCase.NewIdentityDocumentUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initIdentityDocumentHandler() (*identityHTTP.IdentityDocumentHandler, error) {
	useCase, err := c.IdentityDocumentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity document use case for handler: %w", err)
	}
	return identityHTTP.NewIdentityDocumentHandler(useCase, c.Logger()), nil
}
