package app

import (
	"fmt"

	authHTTP "github.com/allisson/idvault/internal/auth/http"
	authRepository "github.com/allisson/idvault/internal/auth/repository"
	authService "github.com/allisson/idvault/internal/auth/service"
	authUseCase "github.com/allisson/idvault/internal/auth/usecase"
)

// SecretService returns the argon2id client secret service.
func (c *Container) SecretService() authService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = authService.NewSecretService()
	})
	return c.secretService
}

// TokenService returns the bearer token service.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// ClientRepository returns the client repository matching DB_DRIVER.
func (c *Container) ClientRepository() (authUseCase.ClientRepository, error) {
	var err error
	c.clientRepositoryInit.Do(func() {
		c.clientRepository, err = c.initClientRepository()
		if err != nil {
			c.setInitError("clientRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("clientRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.clientRepository, nil
}

// TokenRepository returns the token repository matching DB_DRIVER.
func (c *Container) TokenRepository() (authUseCase.TokenRepository, error) {
	var err error
	c.tokenRepositoryInit.Do(func() {
		c.tokenRepository, err = c.initTokenRepository()
		if err != nil {
			c.setInitError("tokenRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("tokenRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.tokenRepository, nil
}

// ClientUseCase returns the client use case.
func (c *Container) ClientUseCase() (authUseCase.ClientUseCase, error) {
	var err error
	c.clientUseCaseInit.Do(func() {
		c.clientUseCase, err = c.initClientUseCase()
		if err != nil {
			c.setInitError("clientUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("clientUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.clientUseCase, nil
}

// TokenUseCase returns the token use case.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.setInitError("tokenUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("tokenUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// TokenHandler returns the HTTP handler for POST /v1/token.
func (c *Container) TokenHandler() (*authHTTP.TokenHandler, error) {
	var err error
	c.tokenHandlerInit.Do(func() {
		c.tokenHandler, err = c.initTokenHandler()
		if err != nil {
			c.setInitError("tokenHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("tokenHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.tokenHandler, nil
}

func (c *Container) initClientRepository() (authUseCase.ClientRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for client repository: %w", err)
	}

	return repositoryFor(c.config.DBDriver,
		func() authUseCase.ClientRepository { return authRepository.NewPostgreSQLClientRepository(db) },
		func() authUseCase.ClientRepository { return authRepository.NewMySQLClientRepository(db) },
	)
}

func (c *Container) initTokenRepository() (authUseCase.TokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for token repository: %w", err)
	}

	return repositoryFor(c.config.DBDriver,
		func() authUseCase.TokenRepository { return authRepository.NewPostgreSQLTokenRepository(db) },
		func() authUseCase.TokenRepository { return authRepository.NewMySQLTokenRepository(db) },
	)
}

func (c *Container) initClientUseCase() (authUseCase.ClientUseCase, error) {
	clientRepository, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for client use case: %w", err)
	}

	useCase := authUseCase.NewClientUseCase(clientRepository, c.SecretService())

	if !c.config.MetricsEnabled {
		return useCase, nil
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for client use case: %w", err)
	}
	return authUseCase.NewClientUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initTokenUseCase() (authUseCase.TokenUseCase, error) {
	clientRepository, err := c.ClientRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get client repository for token use case: %w", err)
	}

	tokenRepository, err := c.TokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get token repository for token use case: %w", err)
	}

	useCase := authUseCase.NewTokenUseCase(
		c.config,
		clientRepository,
		tokenRepository,
		c.SecretService(),
		c.TokenService(),
	)

	if !c.config.MetricsEnabled {
		return useCase, nil
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
	}
	return authUseCase.NewTokenUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initTokenHandler() (*authHTTP.TokenHandler, error) {
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for token handler: %w", err)
	}
	return authHTTP.NewTokenHandler(tokenUseCase, c.Logger()), nil
}
