// Package mocks provides mock implementations of auth use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/idvault/internal/auth/domain"
)

// MockClientUseCase is a mock implementation of ClientUseCase.
type MockClientUseCase struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockClientUseCase) Create(
	ctx context.Context,
	input *authDomain.CreateClientInput,
) (*authDomain.CreateClientOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.CreateClientOutput), args.Error(1)
}

// MockTokenUseCase is a mock implementation of TokenUseCase.
type MockTokenUseCase struct {
	mock.Mock
}

// Issue mocks the Issue method.
func (m *MockTokenUseCase) Issue(
	ctx context.Context,
	input *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssueTokenOutput), args.Error(1)
}

// Authenticate mocks the Authenticate method.
func (m *MockTokenUseCase) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Client, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Client), args.Error(1)
}

// CleanupExpired mocks the CleanupExpired method.
func (m *MockTokenUseCase) CleanupExpired(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
