// Package usecase defines the interfaces and implementations for identity document use cases.
// Use cases combine identifier validation, encryption, fingerprinting and persistence so
// that plaintext identifiers never reach storage.
package usecase

import (
	"context"

	"github.com/google/uuid"

	identityDomain "github.com/allisson/idvault/internal/identity/domain"
	outboxDomain "github.com/allisson/idvault/internal/outbox/domain"
)

// IdentityDocumentRepository defines the interface for identity document persistence.
type IdentityDocumentRepository interface {
	Create(ctx context.Context, document *identityDomain.IdentityDocument) error
	Delete(ctx context.Context, documentID uuid.UUID) error
	Get(ctx context.Context, documentID uuid.UUID) (*identityDomain.IdentityDocument, error)
	GetByFingerprint(ctx context.Context, fingerprint string) (*identityDomain.IdentityDocument, error)

	// List retrieves identity documents ordered by creation time descending with pagination.
	List(ctx context.Context, offset, limit int) ([]*identityDomain.IdentityDocument, error)
}

// OutboxEventRepository persists outbox events in the caller's transaction.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// IdentityDocumentUseCase defines the interface for identity document business logic.
type IdentityDocumentUseCase interface {
	// Register validates, fingerprints and encrypts identifier and stores it for subjectRef.
	// Returns ErrIdentityDocumentAlreadyExists if the identifier is already registered.
	Register(ctx context.Context, subjectRef, identifier string) (*identityDomain.IdentityDocument, error)

	// Get returns document metadata without decrypting the identifier.
	Get(ctx context.Context, documentID uuid.UUID) (*identityDomain.IdentityDocument, error)

	List(ctx context.Context, offset, limit int) ([]*identityDomain.IdentityDocument, error)

	// Lookup finds the document whose identifier equals identifier, by fingerprint.
	Lookup(ctx context.Context, identifier string) (*identityDomain.IdentityDocument, error)

	// Reveal decrypts and returns the stored identifier.
	//
	// Security Note: the returned string is the plaintext identifier. It must not be
	// logged or persisted by the caller.
	Reveal(ctx context.Context, documentID uuid.UUID) (string, error)

	// Verify reports whether candidate matches the stored identifier without decrypting it.
	Verify(ctx context.Context, documentID uuid.UUID, candidate string) (bool, error)

	Delete(ctx context.Context, documentID uuid.UUID) error
}
