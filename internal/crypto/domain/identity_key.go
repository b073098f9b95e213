package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
)

// IdentityKey holds the raw AES-256 key used to encrypt identifiers.
//
// The key is process-wide and immutable: there is exactly one active key and no
// versioning. Callers build the cipher from it and then Close it, so the raw bytes
// do not outlive startup.
type IdentityKey struct {
	Key    []byte
	Source KeySource
}

// Close zeroes the key material.
func (k *IdentityKey) Close() {
	if k == nil {
		return
	}
	Zero(k.Key)
	k.Key = nil
}

// LoadIdentityKey decodes the configured identity key.
//
// When kmsProvider and kmsKeyURI are both empty, encodedKey must be the standard
// base64 encoding of a 32-byte key. When both are set, encodedKey is the base64
// KMS ciphertext produced by the create-identity-key command and it is unwrapped
// through the keeper opened from kmsKeyURI. Setting only one of them is an error.
//
// Key bytes are never logged; only the key source and KMS provider are.
func LoadIdentityKey(
	ctx context.Context,
	encodedKey string,
	kmsProvider string,
	kmsKeyURI string,
	kmsService KMSService,
	logger *slog.Logger,
) (*IdentityKey, error) {
	encodedKey = strings.TrimSpace(encodedKey)
	if encodedKey == "" {
		return nil, ErrIdentityKeyNotSet
	}

	if (kmsProvider == "") != (kmsKeyURI == "") {
		return nil, ErrKMSConfigIncomplete
	}

	decoded, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, ErrInvalidIdentityKeyBase64
	}

	source := KeySourcePlaintext
	key := decoded

	if kmsProvider != "" {
		source = KeySourceKMS
		key, err = unwrapWithKMS(ctx, decoded, kmsKeyURI, kmsService)
		if err != nil {
			return nil, err
		}
	}

	if len(key) != KeySize {
		Zero(key)
		return nil, fmt.Errorf("%w: identity key must be %d bytes, got %d", ErrInvalidKeySize, KeySize, len(key))
	}

	if logger != nil {
		logger.Info("identity key loaded",
			slog.String("source", string(source)),
			slog.String("kms_provider", kmsProvider),
		)
	}

	return &IdentityKey{Key: key, Source: source}, nil
}

func unwrapWithKMS(ctx context.Context, ciphertext []byte, keyURI string, kmsService KMSService) ([]byte, error) {
	if kmsService == nil {
		return nil, fmt.Errorf("%w: no KMS service configured", ErrKMSDecryptionFailed)
	}

	keeper, err := kmsService.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKMSDecryptionFailed, err)
	}
	defer func() { _ = keeper.Close() }()

	key, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKMSDecryptionFailed, err)
	}

	return key, nil
}
