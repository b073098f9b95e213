package service

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	cryptoDomain "github.com/allisson/idvault/internal/crypto/domain"
	cryptoService "github.com/allisson/idvault/internal/crypto/service"
	identityDomain "github.com/allisson/idvault/internal/identity/domain"
)

// identifierCipher adapts a BlockCipher to text identifiers with base64 transport.
type identifierCipher struct {
	blockCipher cryptoService.BlockCipher
}

// NewIdentifierCipher creates an IdentifierCipher over blockCipher.
func NewIdentifierCipher(blockCipher cryptoService.BlockCipher) IdentifierCipher {
	return &identifierCipher{blockCipher: blockCipher}
}

// Encrypt encrypts identifier under a fresh IV.
func (c *identifierCipher) Encrypt(identifier string) (*identityDomain.EncryptedIdentifier, error) {
	if identifier == "" {
		return nil, identityDomain.ErrInvalidIdentifier
	}

	plaintext := []byte(identifier)
	defer cryptoDomain.Zero(plaintext)

	ciphertext, iv, err := c.blockCipher.Encrypt(plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt identifier: %w", err)
	}

	return &identityDomain.EncryptedIdentifier{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		IV:         base64.StdEncoding.EncodeToString(iv),
	}, nil
}

// Decrypt decrypts a base64 ciphertext and IV pair.
func (c *identifierCipher) Decrypt(ciphertext, iv string) (string, error) {
	if ciphertext == "" || iv == "" {
		return "", identityDomain.ErrInvalidEncryptedData
	}

	rawCiphertext, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", identityDomain.ErrDecryptionFailed
	}
	rawIV, err := base64.StdEncoding.DecodeString(iv)
	if err != nil {
		return "", identityDomain.ErrDecryptionFailed
	}

	plaintext, err := c.blockCipher.Decrypt(rawCiphertext, rawIV)
	if err != nil {
		return "", identityDomain.ErrDecryptionFailed
	}
	defer cryptoDomain.Zero(plaintext)

	if !utf8.Valid(plaintext) {
		return "", identityDomain.ErrDecryptionFailed
	}

	return string(plaintext), nil
}
