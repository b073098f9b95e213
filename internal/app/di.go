// Package app provides the dependency injection container that assembles idvault.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authHTTP "github.com/allisson/idvault/internal/auth/http"
	authService "github.com/allisson/idvault/internal/auth/service"
	authUseCase "github.com/allisson/idvault/internal/auth/usecase"
	"github.com/allisson/idvault/internal/config"
	cryptoDomain "github.com/allisson/idvault/internal/crypto/domain"
	cryptoService "github.com/allisson/idvault/internal/crypto/service"
	"github.com/allisson/idvault/internal/database"
	"github.com/allisson/idvault/internal/http"
	identityHTTP "github.com/allisson/idvault/internal/identity/http"
	identityService "github.com/allisson/idvault/internal/identity/service"
	identityUseCase "github.com/allisson/idvault/internal/identity/usecase"
	"github.com/allisson/idvault/internal/metrics"
	outboxUseCase "github.com/allisson/idvault/internal/outbox/usecase"
)

// Container holds all application dependencies. Components are created on first
// access and cached; an initialization error is cached too and returned on every
// later call.
type Container struct {
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Crypto
	kmsService  cryptoDomain.KMSService
	blockCipher cryptoService.BlockCipher

	// Identity
	fingerprintService      identityService.FingerprintService
	identifierCipher        identityService.IdentifierCipher
	identityDocumentRepo    identityUseCase.IdentityDocumentRepository
	identityDocumentUseCase identityUseCase.IdentityDocumentUseCase
	identityDocumentHandler *identityHTTP.IdentityDocumentHandler

	// Auth
	secretService    authService.SecretService
	tokenService     authService.TokenService
	clientRepository authUseCase.ClientRepository
	tokenRepository  authUseCase.TokenRepository
	clientUseCase    authUseCase.ClientUseCase
	tokenUseCase     authUseCase.TokenUseCase
	tokenHandler     *authHTTP.TokenHandler

	// Outbox
	outboxRepository outboxUseCase.OutboxEventRepository
	eventProcessor   outboxUseCase.EventProcessor
	outboxUseCase    outboxUseCase.UseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                          sync.Mutex
	loggerInit                  sync.Once
	dbInit                      sync.Once
	txManagerInit               sync.Once
	metricsProviderInit         sync.Once
	businessMetricsInit         sync.Once
	kmsServiceInit              sync.Once
	blockCipherInit             sync.Once
	fingerprintServiceInit      sync.Once
	identifierCipherInit        sync.Once
	identityDocumentRepoInit    sync.Once
	identityDocumentUseCaseInit sync.Once
	identityDocumentHandlerInit sync.Once
	secretServiceInit           sync.Once
	tokenServiceInit            sync.Once
	clientRepositoryInit        sync.Once
	tokenRepositoryInit         sync.Once
	clientUseCaseInit           sync.Once
	tokenUseCaseInit            sync.Once
	tokenHandlerInit            sync.Once
	outboxRepositoryInit        sync.Once
	eventProcessorInit          sync.Once
	outboxUseCaseInit           sync.Once
	httpServerInit              sync.Once
	metricsServerInit           sync.Once
	initErrors                  map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the JSON slog logger configured from LOG_LEVEL.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection pool.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.setInitError("db", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("db"); storedErr != nil {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.setInitError("txManager", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("txManager"); storedErr != nil {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the OpenTelemetry provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.setInitError("metricsProvider", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("metricsProvider"); storedErr != nil {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.setInitError("businessMetrics", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("businessMetrics"); storedErr != nil {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server with its router configured. ctx bounds the
// background goroutines started by the router's rate limiters.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer(ctx)
		if err != nil {
			c.setInitError("httpServer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("httpServer"); storedErr != nil {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the dedicated metrics server.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.setInitError("metricsServer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("metricsServer"); storedErr != nil {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown stops the servers, flushes metrics and closes the database. Components that
// were never initialized are skipped.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (c *Container) setInitError(name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[name] = err
}

func (c *Container) initError(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[name]
}

// initLogger creates a JSON logger on stdout at the configured level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(context.Background(), database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	identityDocumentHandler, err := c.IdentityDocumentHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity document handler for http server: %w", err)
	}

	tokenHandler, err := c.TokenHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get token handler for http server: %w", err)
	}

	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(
		ctx,
		c.config,
		identityDocumentHandler,
		tokenHandler,
		tokenUseCase,
		c.TokenService(),
		metricsProvider,
	)

	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	return http.NewMetricsServer(
		c.config.ServerHost,
		c.config.MetricsPort,
		c.Logger(),
		metricsProvider,
	), nil
}

// repositoryFor picks the implementation matching DB_DRIVER.
func repositoryFor[T any](driver string, postgres, mysql func() T) (T, error) {
	switch driver {
	case "postgres":
		return postgres(), nil
	case "mysql":
		return mysql(), nil
	default:
		var zero T
		return zero, fmt.Errorf("unsupported database driver: %s", driver)
	}
}
