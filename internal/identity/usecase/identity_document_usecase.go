package usecase

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/idvault/internal/database"
	identityDomain "github.com/allisson/idvault/internal/identity/domain"
	identityService "github.com/allisson/idvault/internal/identity/service"
	outboxDomain "github.com/allisson/idvault/internal/outbox/domain"
)

// identityDocumentUseCase implements IdentityDocumentUseCase.
type identityDocumentUseCase struct {
	txManager    database.TxManager
	documentRepo IdentityDocumentRepository
	outboxRepo   OutboxEventRepository
	cipher       identityService.IdentifierCipher
	fingerprints identityService.FingerprintService
}

// NewIdentityDocumentUseCase creates a new IdentityDocumentUseCase.
func NewIdentityDocumentUseCase(
	txManager database.TxManager,
	documentRepo IdentityDocumentRepository,
	outboxRepo OutboxEventRepository,
	cipher identityService.IdentifierCipher,
	fingerprints identityService.FingerprintService,
) IdentityDocumentUseCase {
	return &identityDocumentUseCase{
		txManager:    txManager,
		documentRepo: documentRepo,
		outboxRepo:   outboxRepo,
		cipher:       cipher,
		fingerprints: fingerprints,
	}
}

// Register stores a new identity document and emits a registered event in the same transaction.
func (i *identityDocumentUseCase) Register(
	ctx context.Context,
	subjectRef string,
	identifier string,
) (*identityDomain.IdentityDocument, error) {
	normalized, err := identityDomain.NormalizeIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	fingerprint := i.fingerprints.Fingerprint(normalized)

	// Fast path for duplicates. The unique index on fingerprint still guards concurrent registrations.
	_, err = i.documentRepo.GetByFingerprint(ctx, fingerprint)
	if err == nil {
		return nil, identityDomain.ErrIdentityDocumentAlreadyExists
	}
	if !errors.Is(err, identityDomain.ErrIdentityDocumentNotFound) {
		return nil, err
	}

	encrypted, err := i.cipher.Encrypt(normalized)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	document := &identityDomain.IdentityDocument{
		ID:          uuid.Must(uuid.NewV7()),
		SubjectRef:  subjectRef,
		Ciphertext:  encrypted.Ciphertext,
		IV:          encrypted.IV,
		Fingerprint: fingerprint,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = i.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := i.documentRepo.Create(txCtx, document); err != nil {
			return err
		}
		return i.emitEvent(txCtx, identityDomain.EventIdentityDocumentRegistered, document)
	})
	if err != nil {
		return nil, err
	}

	return document, nil
}

// Get retrieves identity document metadata by ID.
func (i *identityDocumentUseCase) Get(
	ctx context.Context,
	documentID uuid.UUID,
) (*identityDomain.IdentityDocument, error) {
	return i.documentRepo.Get(ctx, documentID)
}

// List retrieves identity documents with pagination.
func (i *identityDocumentUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*identityDomain.IdentityDocument, error) {
	return i.documentRepo.List(ctx, offset, limit)
}

// Lookup finds an identity document by identifier.
func (i *identityDocumentUseCase) Lookup(
	ctx context.Context,
	identifier string,
) (*identityDomain.IdentityDocument, error) {
	normalized, err := identityDomain.NormalizeIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	return i.documentRepo.GetByFingerprint(ctx, i.fingerprints.Fingerprint(normalized))
}

// Reveal decrypts the identifier of a stored document.
func (i *identityDocumentUseCase) Reveal(ctx context.Context, documentID uuid.UUID) (string, error) {
	document, err := i.documentRepo.Get(ctx, documentID)
	if err != nil {
		return "", err
	}

	return i.cipher.Decrypt(document.Ciphertext, document.IV)
}

// Verify compares candidate against the stored fingerprint in constant time.
func (i *identityDocumentUseCase) Verify(
	ctx context.Context,
	documentID uuid.UUID,
	candidate string,
) (bool, error) {
	normalized, err := identityDomain.NormalizeIdentifier(candidate)
	if err != nil {
		return false, err
	}

	document, err := i.documentRepo.Get(ctx, documentID)
	if err != nil {
		return false, err
	}

	fingerprint := i.fingerprints.Fingerprint(normalized)
	return subtle.ConstantTimeCompare([]byte(fingerprint), []byte(document.Fingerprint)) == 1, nil
}

// Delete removes an identity document and emits a deleted event in the same transaction.
func (i *identityDocumentUseCase) Delete(ctx context.Context, documentID uuid.UUID) error {
	return i.txManager.WithTx(ctx, func(txCtx context.Context) error {
		document, err := i.documentRepo.Get(txCtx, documentID)
		if err != nil {
			return err
		}

		if err := i.documentRepo.Delete(txCtx, documentID); err != nil {
			return err
		}

		return i.emitEvent(txCtx, identityDomain.EventIdentityDocumentDeleted, document)
	})
}

func (i *identityDocumentUseCase) emitEvent(
	ctx context.Context,
	eventType string,
	document *identityDomain.IdentityDocument,
) error {
	payload, err := json.Marshal(identityDomain.IdentityDocumentEvent{
		ID:          document.ID,
		SubjectRef:  document.SubjectRef,
		Fingerprint: document.Fingerprint,
	})
	if err != nil {
		return err
	}

	return i.outboxRepo.Create(ctx, &outboxDomain.OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   string(payload),
		Status:    outboxDomain.OutboxEventStatusPending,
	})
}
