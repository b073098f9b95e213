// Package usecase defines the business logic for API clients and bearer tokens.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/idvault/internal/auth/domain"
)

// ClientRepository defines persistence operations for API clients.
// Implementations must support transaction-aware operations via context propagation.
type ClientRepository interface {
	Create(ctx context.Context, client *authDomain.Client) error

	// Get retrieves a client by ID. Returns ErrClientNotFound if not found.
	Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error)
}

// TokenRepository defines persistence operations for bearer tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *authDomain.Token) error

	// GetByTokenHash retrieves a token by its SHA-256 digest. Returns ErrTokenNotFound if not found.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error)

	// DeleteExpired removes tokens that expired before olderThan and returns the number removed.
	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)

	// CountExpired returns the number of tokens that expired before olderThan.
	CountExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

// ClientUseCase defines operations for managing API clients.
type ClientUseCase interface {
	// Create generates a new client with a random secret.
	//
	// The returned PlainSecret is shown once. Only its argon2id hash is persisted.
	Create(
		ctx context.Context,
		createClientInput *authDomain.CreateClientInput,
	) (*authDomain.CreateClientOutput, error)
}

// TokenUseCase defines operations for issuing and validating bearer tokens.
type TokenUseCase interface {
	// Issue exchanges client credentials for a new token. Unknown clients and wrong
	// secrets both return ErrInvalidCredentials.
	Issue(
		ctx context.Context,
		issueTokenInput *authDomain.IssueTokenInput,
	) (*authDomain.IssueTokenOutput, error)

	// Authenticate resolves a token hash to its active client.
	Authenticate(ctx context.Context, tokenHash string) (*authDomain.Client, error)

	// CleanupExpired removes tokens that expired more than days ago. With dryRun set
	// it only counts them.
	CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error)
}
