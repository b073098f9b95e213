package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/idvault/internal/auth/domain"
	"github.com/allisson/idvault/internal/auth/http/dto"
	authUseCase "github.com/allisson/idvault/internal/auth/usecase"
	apperrors "github.com/allisson/idvault/internal/errors"
	"github.com/allisson/idvault/internal/httputil"
	customValidation "github.com/allisson/idvault/internal/validation"
)

// TokenHandler handles HTTP requests for token issuance.
type TokenHandler struct {
	tokenUseCase authUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(tokenUseCase authUseCase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// IssueTokenHandler exchanges client credentials for a bearer token.
// POST /v1/token. Returns 201 Created with the token and its expiration.
func (h *TokenHandler) IssueTokenHandler(c *gin.Context) {
	var req dto.IssueTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		// Indistinguishable from a wrong secret.
		httputil.HandleErrorGin(c, authDomain.ErrInvalidCredentials, h.logger)
		return
	}

	output, err := h.tokenUseCase.Issue(c.Request.Context(), &authDomain.IssueTokenInput{
		ClientID:     clientID,
		ClientSecret: req.ClientSecret,
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUnauthorized) || apperrors.Is(err, apperrors.ErrForbidden) {
			h.logger.Info("token issuance rejected",
				slog.String("client_id", clientID.String()),
				slog.String("reason", err.Error()))
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.IssueTokenResponse{
		Token:     output.PlainToken,
		ExpiresAt: output.ExpiresAt,
	})
}
