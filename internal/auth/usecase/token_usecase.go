package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/idvault/internal/auth/domain"
	authService "github.com/allisson/idvault/internal/auth/service"
	"github.com/allisson/idvault/internal/config"
	apperrors "github.com/allisson/idvault/internal/errors"
)

type tokenUseCase struct {
	config        *config.Config
	clientRepo    ClientRepository
	tokenRepo     TokenRepository
	secretService authService.SecretService
	tokenService  authService.TokenService
	now           func() time.Time
}

// Issue authenticates a client by secret and stores a new token hash. The plain token
// is only returned here.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	issueTokenInput *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	client, err := t.clientRepo.Get(ctx, issueTokenInput.ClientID)
	if err != nil {
		if errors.Is(err, authDomain.ErrClientNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !t.secretService.CompareSecret(issueTokenInput.ClientSecret, client.Secret) {
		return nil, authDomain.ErrInvalidCredentials
	}

	// Checked after the secret so an inactive status is never disclosed to a guesser.
	if !client.IsActive {
		return nil, authDomain.ErrClientInactive
	}

	plainToken, tokenHash, err := t.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := t.now()
	token := &authDomain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: tokenHash,
		ClientID:  client.ID,
		ExpiresAt: now.Add(t.config.AuthTokenExpiration),
		CreatedAt: now,
	}

	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &authDomain.IssueTokenOutput{
		PlainToken: plainToken,
		ExpiresAt:  token.ExpiresAt,
	}, nil
}

// Authenticate returns ErrInvalidCredentials for unknown, expired or revoked tokens and
// ErrClientInactive when the owning client was deactivated.
func (t *tokenUseCase) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Client, error) {
	token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrTokenNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !token.ExpiresAt.After(t.now()) || token.RevokedAt != nil {
		return nil, authDomain.ErrInvalidCredentials
	}

	client, err := t.clientRepo.Get(ctx, token.ClientID)
	if err != nil {
		if errors.Is(err, authDomain.ErrClientNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !client.IsActive {
		return nil, authDomain.ErrClientInactive
	}

	return client, nil
}

// CleanupExpired deletes or counts tokens whose expiry is older than days.
func (t *tokenUseCase) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "days must be zero or greater")
	}

	olderThan := t.now().AddDate(0, 0, -days)
	if dryRun {
		return t.tokenRepo.CountExpired(ctx, olderThan)
	}
	return t.tokenRepo.DeleteExpired(ctx, olderThan)
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	config *config.Config,
	clientRepo ClientRepository,
	tokenRepo TokenRepository,
	secretService authService.SecretService,
	tokenService authService.TokenService,
) TokenUseCase {
	return &tokenUseCase{
		config:        config,
		clientRepo:    clientRepo,
		tokenRepo:     tokenRepo,
		secretService: secretService,
		tokenService:  tokenService,
		now:           func() time.Time { return time.Now().UTC() },
	}
}
