package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/idvault/internal/auth/domain"
	"github.com/allisson/idvault/internal/metrics"
)

func recordAuth(ctx context.Context, m metrics.BusinessMetrics, operation string, start time.Time, err error) {
	metrics.Observe(ctx, m, "auth", operation, start, err)
}

// clientUseCaseWithMetrics decorates ClientUseCase with metrics instrumentation.
type clientUseCaseWithMetrics struct {
	next    ClientUseCase
	metrics metrics.BusinessMetrics
}

// NewClientUseCaseWithMetrics wraps a ClientUseCase with metrics recording.
func NewClientUseCaseWithMetrics(useCase ClientUseCase, m metrics.BusinessMetrics) ClientUseCase {
	return &clientUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for client creation operations.
func (c *clientUseCaseWithMetrics) Create(
	ctx context.Context,
	createClientInput *authDomain.CreateClientInput,
) (*authDomain.CreateClientOutput, error) {
	start := time.Now()
	output, err := c.next.Create(ctx, createClientInput)
	recordAuth(ctx, c.metrics, "client_create", start, err)
	return output, err
}

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for token issuance.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	issueTokenInput *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Issue(ctx, issueTokenInput)
	recordAuth(ctx, t.metrics, "token_issue", start, err)
	return output, err
}

// Authenticate records metrics for token authentication.
func (t *tokenUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	tokenHash string,
) (*authDomain.Client, error) {
	start := time.Now()
	client, err := t.next.Authenticate(ctx, tokenHash)
	recordAuth(ctx, t.metrics, "token_authenticate", start, err)
	return client, err
}

// CleanupExpired records metrics for expired token cleanup.
func (t *tokenUseCaseWithMetrics) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	start := time.Now()
	count, err := t.next.CleanupExpired(ctx, days, dryRun)
	recordAuth(ctx, t.metrics, "token_cleanup_expired", start, err)
	return count, err
}
