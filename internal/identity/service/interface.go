// Package service provides the identifier cipher and fingerprint services.
package service

import (
	identityDomain "github.com/allisson/idvault/internal/identity/domain"
)

// IdentifierCipher encrypts national identifiers for storage and decrypts them for
// authorized retrieval. Implementations are safe for concurrent use.
type IdentifierCipher interface {
	// Encrypt returns the base64 ciphertext and IV for identifier. It rejects an empty
	// identifier with ErrInvalidIdentifier and does not check the identifier format.
	Encrypt(identifier string) (*identityDomain.EncryptedIdentifier, error)

	// Decrypt returns the identifier encrypted as ciphertext under iv. It returns
	// ErrInvalidEncryptedData for empty arguments and ErrDecryptionFailed when the
	// pair does not decrypt to valid UTF-8 text.
	Decrypt(ciphertext, iv string) (string, error)
}

// FingerprintService computes deterministic fingerprints for identifier lookups.
type FingerprintService interface {
	// Fingerprint returns the lowercase hex SHA-256 digest of identifier, as given.
	Fingerprint(identifier string) string
}
