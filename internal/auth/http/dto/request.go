// Package dto provides data transfer objects for the token endpoint.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/idvault/internal/validation"
)

// IssueTokenRequest contains client credentials.
type IssueTokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"` //nolint:gosec // request field
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ClientID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.ClientSecret,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
