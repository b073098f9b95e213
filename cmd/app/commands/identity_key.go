package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/idvault/internal/crypto/domain"
)

// RunCreateIdentityKey generates a random AES-256 identity key and prints it as
// environment variables.
//
// Without KMS parameters IDENTITY_KEY holds the base64 key itself. With kmsProvider and
// kmsKeyURI the key is encrypted by the KMS first and IDENTITY_KEY holds the base64
// ciphertext. The raw key is zeroed before returning.
func RunCreateIdentityKey(
	ctx context.Context,
	kmsService cryptoDomain.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsProvider string,
	kmsKeyURI string,
) error {
	if (kmsProvider == "") != (kmsKeyURI == "") {
		return fmt.Errorf("--kms-provider and --kms-key-uri are required together: %w",
			cryptoDomain.ErrKMSConfigIncomplete)
	}

	key := make([]byte, cryptoDomain.KeySize)
	defer cryptoDomain.Zero(key)

	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate identity key: %w", err)
	}

	if kmsProvider == "" {
		logger.Warn("identity key generated without KMS; store it in a secrets manager")

		_, err := fmt.Fprintf(writer,
			"# Identity key (plaintext mode)\n"+
				"# Copy this variable to your .env file or secrets manager\n\n"+
				"IDENTITY_KEY=\"%s\"\n",
			base64.StdEncoding.EncodeToString(key),
		)
		return err
	}

	wrapped, err := wrapIdentityKey(ctx, kmsService, kmsKeyURI, key)
	if err != nil {
		return err
	}

	logger.Info("identity key generated", slog.String("kms_provider", kmsProvider))

	_, err = fmt.Fprintf(writer,
		"# Identity key (KMS mode)\n"+
			"# Copy these variables to your .env file or secrets manager\n\n"+
			"IDENTITY_KEY=\"%s\"\n"+
			"KMS_PROVIDER=\"%s\"\n"+
			"KMS_KEY_URI=\"%s\"\n",
		base64.StdEncoding.EncodeToString(wrapped),
		kmsProvider,
		kmsKeyURI,
	)
	return err
}

func wrapIdentityKey(
	ctx context.Context,
	kmsService cryptoDomain.KMSService,
	kmsKeyURI string,
	key []byte,
) ([]byte, error) {
	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() { _ = keeper.Close() }()

	wrapped, err := keeper.Encrypt(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt identity key with KMS: %w", err)
	}
	return wrapped, nil
}
