package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/idvault/internal/crypto/domain"
)

// generateLocalSecretsURI generates a base64key:// URI for testing.
func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func TestKMSService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		require.NotNil(t, keeper)
		defer func() {
			assert.NoError(t, keeper.Close())
		}()

		_, ok := keeper.(*secrets.Keeper)
		assert.True(t, ok, "keeper should be *secrets.Keeper")
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "invalid://uri")
		assert.Error(t, err)
		assert.Nil(t, keeper)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})

	t.Run("Error_EmptyURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "")
		assert.Error(t, err)
		assert.Nil(t, keeper)
	})
}

func TestKMSService_WrapAndLoadIdentityKey(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	kmsService := NewKMSService()
	keyURI := generateLocalSecretsURI(t)

	rawKey := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(rawKey)
	require.NoError(t, err)

	keeper, err := kmsService.OpenKeeper(ctx, keyURI)
	require.NoError(t, err)
	wrapped, err := keeper.Encrypt(ctx, rawKey)
	require.NoError(t, err)
	require.NoError(t, keeper.Close())

	identityKey, err := cryptoDomain.LoadIdentityKey(
		ctx,
		base64.StdEncoding.EncodeToString(wrapped),
		"localsecrets",
		keyURI,
		kmsService,
		logger,
	)
	require.NoError(t, err)
	assert.Equal(t, rawKey, identityKey.Key)
	assert.Equal(t, cryptoDomain.KeySourceKMS, identityKey.Source)

	cbc, err := NewAESCBC(identityKey.Key)
	require.NoError(t, err)
	identityKey.Close()

	ciphertext, iv, err := cbc.Encrypt([]byte("123456789012"))
	require.NoError(t, err)
	plaintext, err := cbc.Decrypt(ciphertext, iv)
	require.NoError(t, err)
	assert.Equal(t, "123456789012", string(plaintext))

	t.Run("wrong wrapping key", func(t *testing.T) {
		_, err := cryptoDomain.LoadIdentityKey(
			ctx,
			base64.StdEncoding.EncodeToString(wrapped),
			"localsecrets",
			generateLocalSecretsURI(t),
			kmsService,
			logger,
		)
		assert.ErrorIs(t, err, cryptoDomain.ErrKMSDecryptionFailed)
	})
}
