package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/idvault/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

type kmsService struct{}

// NewKMSService creates a KMS service backed by gocloud.dev/secrets.
func NewKMSService() cryptoDomain.KMSService {
	return &kmsService{}
}

// OpenKeeper opens a keeper for keyURI. Supported schemes are gcpkms://, awskms://,
// azurekeyvault://, hashivault:// and base64key:// (local development only).
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}
