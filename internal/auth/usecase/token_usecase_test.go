package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/idvault/internal/auth/domain"
	"github.com/allisson/idvault/internal/config"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type tokenUseCaseFixture struct {
	clientRepo    *mockClientRepository
	tokenRepo     *mockTokenRepository
	secretService *mockSecretService
	tokenService  *mockTokenService
	uc            *tokenUseCase
}

func newTokenUseCaseFixture() *tokenUseCaseFixture {
	f := &tokenUseCaseFixture{
		clientRepo:    &mockClientRepository{},
		tokenRepo:     &mockTokenRepository{},
		secretService: &mockSecretService{},
		tokenService:  &mockTokenService{},
	}
	uc := NewTokenUseCase(
		&config.Config{AuthTokenExpiration: time.Hour},
		f.clientRepo,
		f.tokenRepo,
		f.secretService,
		f.tokenService,
	).(*tokenUseCase)
	uc.now = func() time.Time { return fixedNow }
	f.uc = uc
	return f
}

func TestTokenUseCase_Issue(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.Must(uuid.NewV7())
	activeClient := &authDomain.Client{ID: clientID, Secret: "hashed", IsActive: true}
	input := &authDomain.IssueTokenInput{ClientID: clientID, ClientSecret: "plain"}

	t.Run("Success", func(t *testing.T) {
		f := newTokenUseCaseFixture()

		f.clientRepo.On("Get", ctx, clientID).Return(activeClient, nil).Once()
		f.secretService.On("CompareSecret", "plain", "hashed").Return(true).Once()
		f.tokenService.On("GenerateToken").Return("plain-token", "token-hash", nil).Once()
		f.tokenRepo.On("Create", ctx, mock.MatchedBy(func(token *authDomain.Token) bool {
			return token.TokenHash == "token-hash" &&
				token.ClientID == clientID &&
				token.ExpiresAt.Equal(fixedNow.Add(time.Hour)) &&
				token.RevokedAt == nil
		})).Return(nil).Once()

		output, err := f.uc.Issue(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "plain-token", output.PlainToken)
		assert.Equal(t, fixedNow.Add(time.Hour), output.ExpiresAt)
		f.tokenRepo.AssertExpectations(t)
	})

	t.Run("Error_UnknownClient", func(t *testing.T) {
		f := newTokenUseCaseFixture()
		f.clientRepo.On("Get", ctx, clientID).Return(nil, authDomain.ErrClientNotFound).Once()

		output, err := f.uc.Issue(ctx, input)

		assert.Nil(t, output)
		assert.Equal(t, authDomain.ErrInvalidCredentials, err)
	})

	t.Run("Error_WrongSecret", func(t *testing.T) {
		f := newTokenUseCaseFixture()
		f.clientRepo.On("Get", ctx, clientID).Return(activeClient, nil).Once()
		f.secretService.On("CompareSecret", "plain", "hashed").Return(false).Once()

		output, err := f.uc.Issue(ctx, input)

		assert.Nil(t, output)
		assert.Equal(t, authDomain.ErrInvalidCredentials, err)
		f.tokenService.AssertNotCalled(t, "GenerateToken")
	})

	t.Run("Error_InactiveClient", func(t *testing.T) {
		f := newTokenUseCaseFixture()
		inactive := &authDomain.Client{ID: clientID, Secret: "hashed", IsActive: false}
		f.clientRepo.On("Get", ctx, clientID).Return(inactive, nil).Once()
		f.secretService.On("CompareSecret", "plain", "hashed").Return(true).Once()

		output, err := f.uc.Issue(ctx, input)

		assert.Nil(t, output)
		assert.Equal(t, authDomain.ErrClientInactive, err)
	})

	t.Run("Error_RepositoryFailure", func(t *testing.T) {
		f := newTokenUseCaseFixture()
		dbErr := errors.New("connection reset")
		f.clientRepo.On("Get", ctx, clientID).Return(nil, dbErr).Once()

		output, err := f.uc.Issue(ctx, input)

		assert.Nil(t, output)
		assert.Equal(t, dbErr, err)
	})

	t.Run("Error_TokenCreateFails", func(t *testing.T) {
		f := newTokenUseCaseFixture()
		dbErr := errors.New("insert failed")
		f.clientRepo.On("Get", ctx, clientID).Return(activeClient, nil).Once()
		f.secretService.On("CompareSecret", "plain", "hashed").Return(true).Once()
		f.tokenService.On("GenerateToken").Return("plain-token", "token-hash", nil).Once()
		f.tokenRepo.On("Create", ctx, mock.Anything).Return(dbErr).Once()

		output, err := f.uc.Issue(ctx, input)

		assert.Nil(t, output)
		assert.Equal(t, dbErr, err)
	})
}

func TestTokenUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.Must(uuid.NewV7())
	activeClient := &authDomain.Client{ID: clientID, IsActive: true}
	validToken := &authDomain.Token{ClientID: clientID, ExpiresAt: fixedNow.Add(time.Minute)}

	t.Run("Success", func(t *testing.T) {
		f := newTokenUseCaseFixture()
		f.tokenRepo.On("GetByTokenHash", ctx, "hash").Return(validToken, nil).Once()
		f.clientRepo.On("Get", ctx, clientID).Return(activeClient, nil).Once()

		client, err := f.uc.Authenticate(ctx, "hash")

		require.NoError(t, err)
		assert.Equal(t, activeClient, client)
	})

	t.Run("Error_UnknownToken", func(t *testing.T) {
		f := newTokenUseCaseFixture()
		f.tokenRepo.On("GetByTokenHash", ctx, "hash").Return(nil, authDomain.ErrTokenNotFound).Once()

		client, err := f.uc.Authenticate(ctx, "hash")

		assert.Nil(t, client)
		assert.Equal(t, authDomain.ErrInvalidCredentials, err)
	})

	t.Run("Error_ExpiredToken", func(t *testing.T) {
		f := newTokenUseCaseFixture()
		expired := &authDomain.Token{ClientID: clientID, ExpiresAt: fixedNow}
		f.tokenRepo.On("GetByTokenHash", ctx, "hash").Return(expired, nil).Once()

		client, err := f.uc.Authenticate(ctx, "hash")

		assert.Nil(t, client)
		assert.Equal(t, authDomain.ErrInvalidCredentials, err)
		f.clientRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Error_RevokedToken", func(t *testing.T) {
		f := newTokenUseCaseFixture()
		revokedAt := fixedNow.Add(-time.Minute)
		revoked := &authDomain.Token{ClientID: clientID, ExpiresAt: fixedNow.Add(time.Hour), RevokedAt: &revokedAt}
		f.tokenRepo.On("GetByTokenHash", ctx, "hash").Return(revoked, nil).Once()

		client, err := f.uc.Authenticate(ctx, "hash")

		assert.Nil(t, client)
		assert.Equal(t, authDomain.ErrInvalidCredentials, err)
	})

	t.Run("Error_ClientDeleted", func(t *testing.T) {
		f := newTokenUseCaseFixture()
		f.tokenRepo.On("GetByTokenHash", ctx, "hash").Return(validToken, nil).Once()
		f.clientRepo.On("Get", ctx, clientID).Return(nil, authDomain.ErrClientNotFound).Once()

		client, err := f.uc.Authenticate(ctx, "hash")

		assert.Nil(t, client)
		assert.Equal(t, authDomain.ErrInvalidCredentials, err)
	})

	t.Run("Error_ClientInactive", func(t *testing.T) {
		f := newTokenUseCaseFixture()
		f.tokenRepo.On("GetByTokenHash", ctx, "hash").Return(validToken, nil).Once()
		f.clientRepo.On("Get", ctx, clientID).Return(&authDomain.Client{ID: clientID}, nil).Once()

		client, err := f.uc.Authenticate(ctx, "hash")

		assert.Nil(t, client)
		assert.Equal(t, authDomain.ErrClientInactive, err)
	})
}

func TestTokenUseCase_CleanupExpired(t *testing.T) {
	ctx := context.Background()
	cutoff := fixedNow.AddDate(0, 0, -7)

	t.Run("Delete", func(t *testing.T) {
		f := newTokenUseCaseFixture()
		f.tokenRepo.On("DeleteExpired", ctx, cutoff).Return(int64(12), nil).Once()

		count, err := f.uc.CleanupExpired(ctx, 7, false)

		require.NoError(t, err)
		assert.Equal(t, int64(12), count)
		f.tokenRepo.AssertNotCalled(t, "CountExpired", mock.Anything, mock.Anything)
	})

	t.Run("DryRun", func(t *testing.T) {
		f := newTokenUseCaseFixture()
		f.tokenRepo.On("CountExpired", ctx, cutoff).Return(int64(3), nil).Once()

		count, err := f.uc.CleanupExpired(ctx, 7, true)

		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
		f.tokenRepo.AssertNotCalled(t, "DeleteExpired", mock.Anything, mock.Anything)
	})

	t.Run("ZeroDaysUsesNow", func(t *testing.T) {
		f := newTokenUseCaseFixture()
		f.tokenRepo.On("DeleteExpired", ctx, fixedNow).Return(int64(0), nil).Once()

		count, err := f.uc.CleanupExpired(ctx, 0, false)

		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Error_NegativeDays", func(t *testing.T) {
		f := newTokenUseCaseFixture()

		_, err := f.uc.CleanupExpired(ctx, -1, false)

		assert.Error(t, err)
		f.tokenRepo.AssertNotCalled(t, "DeleteExpired", mock.Anything, mock.Anything)
	})
}
