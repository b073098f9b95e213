package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/idvault/internal/auth/domain"
	"github.com/allisson/idvault/internal/auth/usecase"
	usecaseMocks "github.com/allisson/idvault/internal/auth/usecase/mocks"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectRecord(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "auth", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "auth", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestClientUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Create success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockClientUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewClientUseCaseWithMetrics(mockNext, mockMetrics)

		input := &authDomain.CreateClientInput{Name: "test"}
		output := &authDomain.CreateClientOutput{ID: uuid.New()}

		mockNext.On("Create", ctx, input).Return(output, nil).Once()
		expectRecord(mockMetrics, ctx, "client_create", "success")

		res, err := uc.Create(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, output, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Create error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockClientUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewClientUseCaseWithMetrics(mockNext, mockMetrics)

		input := &authDomain.CreateClientInput{Name: "test"}
		mockNext.On("Create", ctx, input).Return(nil, errors.New("error")).Once()
		expectRecord(mockMetrics, ctx, "client_create", "error")

		res, err := uc.Create(ctx, input)
		assert.Error(t, err)
		assert.Nil(t, res)
		mockMetrics.AssertExpectations(t)
	})
}

func TestTokenUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Issue success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockTokenUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewTokenUseCaseWithMetrics(mockNext, mockMetrics)

		input := &authDomain.IssueTokenInput{ClientID: uuid.New(), ClientSecret: "secret"}
		output := &authDomain.IssueTokenOutput{PlainToken: "token"}
		mockNext.On("Issue", ctx, input).Return(output, nil).Once()
		expectRecord(mockMetrics, ctx, "token_issue", "success")

		res, err := uc.Issue(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, output, res)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Authenticate error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockTokenUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewTokenUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Authenticate", ctx, "hash").Return(nil, authDomain.ErrInvalidCredentials).Once()
		expectRecord(mockMetrics, ctx, "token_authenticate", "error")

		res, err := uc.Authenticate(ctx, "hash")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.Nil(t, res)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("CleanupExpired success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockTokenUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewTokenUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("CleanupExpired", ctx, 30, true).Return(int64(4), nil).Once()
		expectRecord(mockMetrics, ctx, "token_cleanup_expired", "success")

		count, err := uc.CleanupExpired(ctx, 30, true)
		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
		mockMetrics.AssertExpectations(t)
	})
}
