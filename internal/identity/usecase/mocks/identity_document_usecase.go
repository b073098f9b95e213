// Package mocks provides mock implementations of identity use cases for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	identityDomain "github.com/allisson/idvault/internal/identity/domain"
)

// MockIdentityDocumentUseCase is a mock implementation of IdentityDocumentUseCase.
type MockIdentityDocumentUseCase struct {
	mock.Mock
}

// Register mocks the Register method.
func (m *MockIdentityDocumentUseCase) Register(
	ctx context.Context,
	subjectRef string,
	identifier string,
) (*identityDomain.IdentityDocument, error) {
	args := m.Called(ctx, subjectRef, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.IdentityDocument), args.Error(1)
}

// Get mocks the Get method.
func (m *MockIdentityDocumentUseCase) Get(
	ctx context.Context,
	documentID uuid.UUID,
) (*identityDomain.IdentityDocument, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.IdentityDocument), args.Error(1)
}

// List mocks the List method.
func (m *MockIdentityDocumentUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*identityDomain.IdentityDocument, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identityDomain.IdentityDocument), args.Error(1)
}

// Lookup mocks the Lookup method.
func (m *MockIdentityDocumentUseCase) Lookup(
	ctx context.Context,
	identifier string,
) (*identityDomain.IdentityDocument, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.IdentityDocument), args.Error(1)
}

// Reveal mocks the Reveal method.
func (m *MockIdentityDocumentUseCase) Reveal(ctx context.Context, documentID uuid.UUID) (string, error) {
	args := m.Called(ctx, documentID)
	return args.String(0), args.Error(1)
}

// Verify mocks the Verify method.
func (m *MockIdentityDocumentUseCase) Verify(
	ctx context.Context,
	documentID uuid.UUID,
	candidate string,
) (bool, error) {
	args := m.Called(ctx, documentID, candidate)
	return args.Bool(0), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockIdentityDocumentUseCase) Delete(ctx context.Context, documentID uuid.UUID) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}
