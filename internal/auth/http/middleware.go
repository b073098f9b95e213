package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/idvault/internal/auth/domain"
	authService "github.com/allisson/idvault/internal/auth/service"
	authUseCase "github.com/allisson/idvault/internal/auth/usecase"
	apperrors "github.com/allisson/idvault/internal/errors"
	"github.com/allisson/idvault/internal/httputil"
)

const bearerPrefix = "bearer "

// AuthenticationMiddleware resolves "Authorization: Bearer <token>" to a client and stores it
// in the request context.
//
// Missing, malformed, unknown or expired tokens return 401. Tokens of inactive clients return 403.
func AuthenticationMiddleware(
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) <= len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		client, err := tokenUseCase.Authenticate(c.Request.Context(), tokenService.HashToken(plainToken))
		if err != nil {
			logger.Debug("authentication failed", slog.Any("error", err))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithClient(c.Request.Context(), client))
		c.Next()
	}
}

// AuthorizationMiddleware requires the authenticated client to hold capability.
// It must run after AuthenticationMiddleware.
func AuthorizationMiddleware(
	capability authDomain.Capability,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := GetClient(c.Request.Context())
		if !ok {
			logger.Debug("authorization failed: no authenticated client in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !client.HasCapability(capability) {
			logger.Debug("authorization failed: missing capability",
				slog.String("client_id", client.ID.String()),
				slog.String("capability", string(capability)))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
