package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/idvault/internal/auth/domain"
	authService "github.com/allisson/idvault/internal/auth/service"
	apperrors "github.com/allisson/idvault/internal/errors"
)

type clientUseCase struct {
	clientRepo    ClientRepository
	secretService authService.SecretService
}

// Create validates the capability list, generates a secret and persists the client.
func (c *clientUseCase) Create(
	ctx context.Context,
	createClientInput *authDomain.CreateClientInput,
) (*authDomain.CreateClientOutput, error) {
	if len(createClientInput.Capabilities) == 0 {
		return nil, authDomain.ErrInvalidCapability
	}
	for _, capability := range createClientInput.Capabilities {
		if !capability.IsValid() {
			return nil, apperrors.Wrapf(authDomain.ErrInvalidCapability, "unknown capability %q", capability)
		}
	}

	plainSecret, hashedSecret, err := c.secretService.GenerateSecret()
	if err != nil {
		return nil, err
	}

	client := &authDomain.Client{
		ID:           uuid.Must(uuid.NewV7()),
		Secret:       hashedSecret,
		Name:         createClientInput.Name,
		IsActive:     createClientInput.IsActive,
		Capabilities: createClientInput.Capabilities,
		CreatedAt:    time.Now().UTC(),
	}

	if err := c.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return &authDomain.CreateClientOutput{
		ID:          client.ID,
		PlainSecret: plainSecret,
	}, nil
}

// NewClientUseCase creates a new ClientUseCase with the provided dependencies.
func NewClientUseCase(
	clientRepo ClientRepository,
	secretService authService.SecretService,
) ClientUseCase {
	return &clientUseCase{
		clientRepo:    clientRepo,
		secretService: secretService,
	}
}
