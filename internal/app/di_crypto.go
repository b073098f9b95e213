package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/allisson/idvault/internal/crypto/domain"
	cryptoService "github.com/allisson/idvault/internal/crypto/service"
)

// KMSService returns the gocloud-backed KMS service.
func (c *Container) KMSService() cryptoDomain.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// BlockCipher returns the AES-256-CBC cipher keyed with the configured identity key.
// The raw key is zeroed once the cipher is built.
func (c *Container) BlockCipher() (cryptoService.BlockCipher, error) {
	var err error
	c.blockCipherInit.Do(func() {
		c.blockCipher, err = c.initBlockCipher()
		if err != nil {
			c.setInitError("blockCipher", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("blockCipher"); storedErr != nil {
		return nil, storedErr
	}
	return c.blockCipher, nil
}

func (c *Container) initBlockCipher() (cryptoService.BlockCipher, error) {
	identityKey, err := cryptoDomain.LoadIdentityKey(
		context.Background(),
		c.config.IdentityKey,
		c.config.KMSProvider,
		c.config.KMSKeyURI,
		c.KMSService(),
		c.Logger(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity key: %w", err)
	}
	defer identityKey.Close()

	blockCipher, err := cryptoService.NewAESCBC(identityKey.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity cipher: %w", err)
	}
	return blockCipher, nil
}
