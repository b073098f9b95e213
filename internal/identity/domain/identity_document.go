package domain

import (
	"time"

	"github.com/google/uuid"
)

// Outbox event types emitted by identity document operations.
const (
	EventIdentityDocumentRegistered = "identity_document.registered"
	EventIdentityDocumentDeleted    = "identity_document.deleted"
)

// EncryptedIdentifier is the output of encrypting an identifier. Ciphertext and IV
// are standard base64 and must always be stored and moved together.
type EncryptedIdentifier struct {
	Ciphertext string
	IV         string
}

// IdentityDocument is a stored national identifier.
type IdentityDocument struct {
	ID          uuid.UUID
	SubjectRef  string
	Ciphertext  string
	IV          string
	Fingerprint string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IdentityDocumentEvent is the outbox payload for identity document events. It never
// carries the identifier or its ciphertext.
type IdentityDocumentEvent struct {
	ID          uuid.UUID `json:"id"`
	SubjectRef  string    `json:"subject_ref"`
	Fingerprint string    `json:"fingerprint"`
}
