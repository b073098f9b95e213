package domain

import (
	cryptoDomain "github.com/allisson/idvault/internal/crypto/domain"
	"github.com/allisson/idvault/internal/errors"
)

// Identity document errors.
var (
	// ErrInvalidIdentifier indicates an empty or malformed national identifier.
	ErrInvalidIdentifier = errors.Wrap(errors.ErrInvalidInput, "invalid identifier provided")

	// ErrInvalidEncryptedData indicates an empty ciphertext or IV was passed to decrypt.
	ErrInvalidEncryptedData = errors.Wrap(errors.ErrInvalidInput, "invalid encrypted data or IV provided")

	// ErrDecryptionFailed indicates a stored ciphertext could not be decrypted.
	ErrDecryptionFailed = cryptoDomain.ErrDecryptionFailed

	// ErrIdentityDocumentNotFound indicates the identity document was not found.
	ErrIdentityDocumentNotFound = errors.Wrap(errors.ErrNotFound, "identity document not found")

	// ErrIdentityDocumentAlreadyExists indicates an identity document with the same
	// fingerprint is already registered.
	ErrIdentityDocumentAlreadyExists = errors.Wrap(errors.ErrConflict, "identity document already exists")
)
