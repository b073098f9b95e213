// Package validation holds jellydator/validation rules shared by the request DTOs.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/idvault/internal/errors"
	identityDomain "github.com/allisson/idvault/internal/identity/domain"
)

// WrapValidationError turns a DTO validation failure into ErrInvalidInput so it maps to 422.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NationalID accepts a 12-digit identifier with optional surrounding whitespace.
// Empty values pass; pair it with validation.Required.
var NationalID = validation.NewStringRuleWithError(
	identityDomain.IsValidFormat,
	validation.NewError("validation_national_id", "must be a 12-digit national identifier"),
)

// NotBlank rejects strings made only of whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
