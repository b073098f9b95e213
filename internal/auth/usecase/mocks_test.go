package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/idvault/internal/auth/domain"
)

type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) Create(ctx context.Context, client *authDomain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *mockClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Client), args.Error(1)
}

type mockTokenRepository struct {
	mock.Mock
}

func (m *mockTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Token), args.Error(1)
}

func (m *mockTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

type mockSecretService struct {
	mock.Mock
}

func (m *mockSecretService) GenerateSecret() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockSecretService) HashSecret(plainSecret string) (string, error) {
	args := m.Called(plainSecret)
	return args.String(0), args.Error(1)
}

func (m *mockSecretService) CompareSecret(plainSecret string, hashedSecret string) bool {
	args := m.Called(plainSecret, hashedSecret)
	return args.Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) HashToken(plainToken string) string {
	args := m.Called(plainToken)
	return args.String(0)
}
