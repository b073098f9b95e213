package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/idvault/internal/errors"
)

// Page size bounds for list endpoints.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

var (
	// ErrInvalidOffset is returned when offset is not a non-negative integer.
	ErrInvalidOffset = apperrors.Wrap(apperrors.ErrInvalidInput, "offset must be a non-negative integer")

	// ErrInvalidLimit is returned when limit is outside [1, MaxPageLimit].
	ErrInvalidLimit = apperrors.Wrapf(apperrors.ErrInvalidInput, "limit must be between 1 and %d", MaxPageLimit)
)

// ParsePagination reads the offset and limit query parameters.
// Missing values default to 0 and DefaultPageLimit.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, ErrInvalidOffset
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageLimit)))
	if err != nil || limit < 1 || limit > MaxPageLimit {
		return 0, 0, ErrInvalidLimit
	}

	return offset, limit, nil
}
