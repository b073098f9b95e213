// Package http provides HTTP handlers for identity document operations.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/idvault/internal/httputil"
	"github.com/allisson/idvault/internal/identity/http/dto"
	identityUseCase "github.com/allisson/idvault/internal/identity/usecase"
	customValidation "github.com/allisson/idvault/internal/validation"
)

var errInvalidDocumentID = errors.New("invalid identity document ID format: must be a valid UUID")

// IdentityDocumentHandler handles HTTP requests for identity documents.
type IdentityDocumentHandler struct {
	useCase identityUseCase.IdentityDocumentUseCase
	logger  *slog.Logger
}

// NewIdentityDocumentHandler creates a new identity document handler.
func NewIdentityDocumentHandler(
	useCase identityUseCase.IdentityDocumentUseCase,
	logger *slog.Logger,
) *IdentityDocumentHandler {
	return &IdentityDocumentHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// RegisterHandler stores a new identity document.
// POST /v1/identity-documents - Requires WriteCapability.
// Returns 201 Created with document metadata.
func (h *IdentityDocumentHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterIdentityDocumentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	document, err := h.useCase.Register(c.Request.Context(), req.SubjectRef, req.Identifier)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapIdentityDocumentToResponse(document))
}

// ListHandler lists identity documents newest first.
// GET /v1/identity-documents?offset=0&limit=50 - Requires ReadCapability.
func (h *IdentityDocumentHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	documents, err := h.useCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIdentityDocumentsToListResponse(documents))
}

// GetHandler returns identity document metadata.
// GET /v1/identity-documents/:id - Requires ReadCapability.
func (h *IdentityDocumentHandler) GetHandler(c *gin.Context) {
	documentID, ok := h.parseID(c)
	if !ok {
		return
	}

	document, err := h.useCase.Get(c.Request.Context(), documentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIdentityDocumentToResponse(document))
}

// LookupHandler finds an identity document by identifier.
// POST /v1/identity-documents/lookup - Requires ReadCapability.
// The identifier travels in the body so it never appears in URLs or access logs.
func (h *IdentityDocumentHandler) LookupHandler(c *gin.Context) {
	var req dto.IdentifierRequest
	if !h.bindIdentifier(c, &req) {
		return
	}

	document, err := h.useCase.Lookup(c.Request.Context(), req.Identifier)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIdentityDocumentToResponse(document))
}

// VerifyHandler checks a candidate identifier against a stored document.
// POST /v1/identity-documents/:id/verify - Requires ReadCapability.
func (h *IdentityDocumentHandler) VerifyHandler(c *gin.Context) {
	documentID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.IdentifierRequest
	if !h.bindIdentifier(c, &req) {
		return
	}

	match, err := h.useCase.Verify(c.Request.Context(), documentID, req.Identifier)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{Match: match})
}

// RevealHandler decrypts and returns the stored identifier.
// POST /v1/identity-documents/:id/reveal - Requires RevealCapability.
func (h *IdentityDocumentHandler) RevealHandler(c *gin.Context) {
	documentID, ok := h.parseID(c)
	if !ok {
		return
	}

	identifier, err := h.useCase.Reveal(c.Request.Context(), documentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.RevealResponse{
		ID:         documentID.String(),
		Identifier: identifier,
	})
}

// DeleteHandler removes an identity document.
// DELETE /v1/identity-documents/:id - Requires DeleteCapability.
// Returns 204 No Content.
func (h *IdentityDocumentHandler) DeleteHandler(c *gin.Context) {
	documentID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.useCase.Delete(c.Request.Context(), documentID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *IdentityDocumentHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, errInvalidDocumentID, h.logger)
		return uuid.Nil, false
	}
	return documentID, true
}

func (h *IdentityDocumentHandler) bindIdentifier(c *gin.Context, req *dto.IdentifierRequest) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return false
	}
	return true
}
