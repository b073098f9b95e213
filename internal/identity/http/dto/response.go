package dto

import (
	"time"

	identityDomain "github.com/allisson/idvault/internal/identity/domain"
)

// IdentityDocumentResponse represents identity document metadata in API responses.
// It never includes the identifier or its ciphertext.
type IdentityDocumentResponse struct {
	ID          string    `json:"id"`
	SubjectRef  string    `json:"subject_ref"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapIdentityDocumentToResponse converts a domain identity document to an API response.
func MapIdentityDocumentToResponse(document *identityDomain.IdentityDocument) IdentityDocumentResponse {
	return IdentityDocumentResponse{
		ID:          document.ID.String(),
		SubjectRef:  document.SubjectRef,
		Fingerprint: document.Fingerprint,
		CreatedAt:   document.CreatedAt,
		UpdatedAt:   document.UpdatedAt,
	}
}

// ListIdentityDocumentsResponse represents a paginated list of identity documents.
type ListIdentityDocumentsResponse struct {
	Data []IdentityDocumentResponse `json:"data"`
}

// MapIdentityDocumentsToListResponse converts domain identity documents to a list response.
func MapIdentityDocumentsToListResponse(
	documents []*identityDomain.IdentityDocument,
) ListIdentityDocumentsResponse {
	data := make([]IdentityDocumentResponse, 0, len(documents))
	for _, document := range documents {
		data = append(data, MapIdentityDocumentToResponse(document))
	}
	return ListIdentityDocumentsResponse{Data: data}
}

// VerifyResponse reports whether a candidate identifier matched the stored one.
type VerifyResponse struct {
	Match bool `json:"match"`
}

// RevealResponse contains a decrypted identifier.
// SECURITY: Identifier is plaintext and must only be transmitted over HTTPS.
type RevealResponse struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
}
