// Package http provides the API server, its router and the dedicated metrics server.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/idvault/internal/auth/domain"
	authHTTP "github.com/allisson/idvault/internal/auth/http"
	authService "github.com/allisson/idvault/internal/auth/service"
	authUseCase "github.com/allisson/idvault/internal/auth/usecase"
	"github.com/allisson/idvault/internal/config"
	identityHTTP "github.com/allisson/idvault/internal/identity/http"
	"github.com/allisson/idvault/internal/metrics"
)

const readinessTimeout = 2 * time.Second

// Server is the public API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new API server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with all routes and middleware.
//
// ctx bounds the lifetime of the rate limiter cleanup goroutines. metricsProvider may be nil.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	identityHandler *identityHTTP.IdentityDocumentHandler,
	tokenHandler *authHTTP.TokenHandler,
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.Use(CustomLoggerMiddleware(s.logger))

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	tokenRoute := []gin.HandlerFunc{}
	if cfg.RateLimitTokenEnabled {
		tokenRoute = append(tokenRoute, authHTTP.TokenRateLimitMiddleware(
			ctx,
			cfg.RateLimitTokenRequestsPerSec,
			cfg.RateLimitTokenBurst,
			s.logger,
		))
	}
	tokenRoute = append(tokenRoute, tokenHandler.IssueTokenHandler)
	v1.POST("/token", tokenRoute...)

	documents := v1.Group("/identity-documents")
	documents.Use(authHTTP.AuthenticationMiddleware(tokenUseCase, tokenService, s.logger))
	if cfg.RateLimitEnabled {
		documents.Use(authHTTP.RateLimitMiddleware(
			ctx,
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			s.logger,
		))
	}

	s.registerIdentityDocumentRoutes(documents, identityHandler)

	s.router = router
}

// registerIdentityDocumentRoutes registers the document routes. Lookup is a static
// segment and must be registered before the :id routes.
func (s *Server) registerIdentityDocumentRoutes(
	group *gin.RouterGroup,
	handler *identityHTTP.IdentityDocumentHandler,
) {
	requires := func(capability domain.Capability) gin.HandlerFunc {
		return authHTTP.AuthorizationMiddleware(capability, s.logger)
	}

	group.POST("", requires(domain.WriteCapability), handler.RegisterHandler)
	group.GET("", requires(domain.ReadCapability), handler.ListHandler)
	group.POST("/lookup", requires(domain.ReadCapability), handler.LookupHandler)
	group.GET("/:id", requires(domain.ReadCapability), handler.GetHandler)
	group.DELETE("/:id", requires(domain.DeleteCapability), handler.DeleteHandler)
	group.POST("/:id/verify", requires(domain.ReadCapability), handler.VerifyHandler)
	group.POST("/:id/reveal", requires(domain.RevealCapability), handler.RevealHandler)
}

// GetHandler returns the router, or nil before SetupRouter is called.
func (s *Server) GetHandler() http.Handler {
	if s.router == nil {
		return nil
	}
	return s.router
}

// Start serves requests until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured: call SetupRouter before Start")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler pings the database.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		s.notReady(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		s.notReady(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}

func (s *Server) notReady(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status":     "not_ready",
		"components": gin.H{"database": "error"},
	})
}
