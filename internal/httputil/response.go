// Package httputil maps domain errors to JSON error responses.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/idvault/internal/errors"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// errorMapping ties a sentinel to its response. An empty message echoes err.Error().
type errorMapping struct {
	sentinel error
	status   int
	code     string
	message  string
}

// errorMappings is checked in order; the first sentinel matched with errors.Is wins.
var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found"},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", "A conflict occurred with existing data"},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input", ""},
	{apperrors.ErrUnprocessable, http.StatusUnprocessableEntity, "unprocessable", "The stored data could not be processed"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Authentication is required"},
	{apperrors.ErrForbidden, http.StatusForbidden, "forbidden", "You don't have permission to access this resource"},
}

// HandleErrorGin writes the response for err. Errors matching no sentinel become an
// opaque 500 and their details only reach the log.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	status := http.StatusInternalServerError
	response := ErrorResponse{Error: "internal_error", Message: "An internal error occurred"}

	for _, mapping := range errorMappings {
		if !apperrors.Is(err, mapping.sentinel) {
			continue
		}
		status = mapping.status
		response = ErrorResponse{Error: mapping.code, Message: mapping.message}
		if response.Message == "" {
			response.Message = err.Error()
		}
		break
	}

	if logger != nil {
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", status),
			slog.String("error_code", response.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(status, response)
}

// HandleBadRequestGin writes a 400 for malformed JSON or path parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	writeClientError(c, http.StatusBadRequest, "bad_request", "bad request", err, logger)
}

// HandleValidationErrorGin writes a 422 for a request that failed DTO validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	writeClientError(c, http.StatusUnprocessableEntity, "validation_error", "validation failed", err, logger)
}

func writeClientError(c *gin.Context, status int, code, logMessage string, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn(logMessage, slog.Any("error", err))
	}

	c.JSON(status, ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}
