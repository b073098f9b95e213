// Package dto provides data transfer objects for identity document HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/idvault/internal/validation"
)

// RegisterIdentityDocumentRequest contains the parameters for registering an identity document.
type RegisterIdentityDocumentRequest struct {
	SubjectRef string `json:"subject_ref"`
	Identifier string `json:"identifier"`
}

// Validate checks if the register request is valid.
func (r *RegisterIdentityDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SubjectRef,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Identifier,
			validation.Required,
			customValidation.NationalID,
		),
	)
}

// IdentifierRequest carries a single identifier, used by lookup and verify.
type IdentifierRequest struct {
	Identifier string `json:"identifier"`
}

// Validate checks if the identifier request is valid.
func (r *IdentifierRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Identifier,
			validation.Required,
			customValidation.NationalID,
		),
	)
}
