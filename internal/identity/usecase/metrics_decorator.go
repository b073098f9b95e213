package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	identityDomain "github.com/allisson/idvault/internal/identity/domain"
	"github.com/allisson/idvault/internal/metrics"
)

const metricsDomain = "identity"

// identityDocumentUseCaseWithMetrics decorates IdentityDocumentUseCase with metrics instrumentation.
type identityDocumentUseCaseWithMetrics struct {
	next    IdentityDocumentUseCase
	metrics metrics.BusinessMetrics
}

// NewIdentityDocumentUseCaseWithMetrics wraps an IdentityDocumentUseCase with metrics recording.
func NewIdentityDocumentUseCaseWithMetrics(
	useCase IdentityDocumentUseCase,
	m metrics.BusinessMetrics,
) IdentityDocumentUseCase {
	return &identityDocumentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (d *identityDocumentUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	metrics.Observe(ctx, d.metrics, metricsDomain, operation, start, err)
}

// Register records metrics for identity document registration.
func (d *identityDocumentUseCaseWithMetrics) Register(
	ctx context.Context,
	subjectRef string,
	identifier string,
) (*identityDomain.IdentityDocument, error) {
	start := time.Now()
	document, err := d.next.Register(ctx, subjectRef, identifier)
	d.record(ctx, "identity_document_register", start, err)
	return document, err
}

// Get records metrics for identity document retrieval.
func (d *identityDocumentUseCaseWithMetrics) Get(
	ctx context.Context,
	documentID uuid.UUID,
) (*identityDomain.IdentityDocument, error) {
	start := time.Now()
	document, err := d.next.Get(ctx, documentID)
	d.record(ctx, "identity_document_get", start, err)
	return document, err
}

// List records metrics for identity document listing.
func (d *identityDocumentUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*identityDomain.IdentityDocument, error) {
	start := time.Now()
	documents, err := d.next.List(ctx, offset, limit)
	d.record(ctx, "identity_document_list", start, err)
	return documents, err
}

// Lookup records metrics for identity document lookups.
func (d *identityDocumentUseCaseWithMetrics) Lookup(
	ctx context.Context,
	identifier string,
) (*identityDomain.IdentityDocument, error) {
	start := time.Now()
	document, err := d.next.Lookup(ctx, identifier)
	d.record(ctx, "identity_document_lookup", start, err)
	return document, err
}

// Reveal records metrics for identifier decryption.
func (d *identityDocumentUseCaseWithMetrics) Reveal(ctx context.Context, documentID uuid.UUID) (string, error) {
	start := time.Now()
	identifier, err := d.next.Reveal(ctx, documentID)
	d.record(ctx, "identity_document_reveal", start, err)
	return identifier, err
}

// Verify records metrics for identifier verification.
func (d *identityDocumentUseCaseWithMetrics) Verify(
	ctx context.Context,
	documentID uuid.UUID,
	candidate string,
) (bool, error) {
	start := time.Now()
	match, err := d.next.Verify(ctx, documentID, candidate)
	d.record(ctx, "identity_document_verify", start, err)
	return match, err
}

// Delete records metrics for identity document deletion.
func (d *identityDocumentUseCaseWithMetrics) Delete(ctx context.Context, documentID uuid.UUID) error {
	start := time.Now()
	err := d.next.Delete(ctx, documentID)
	d.record(ctx, "identity_document_delete", start, err)
	return err
}
