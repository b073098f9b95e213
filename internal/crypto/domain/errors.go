package domain

import (
	"github.com/allisson/idvault/internal/errors"
)

// Key loading and cipher errors.
var (
	// ErrIdentityKeyNotSet indicates IDENTITY_KEY is empty.
	ErrIdentityKeyNotSet = errors.New("IDENTITY_KEY is not set")

	// ErrInvalidIdentityKeyBase64 indicates IDENTITY_KEY is not valid standard base64.
	ErrInvalidIdentityKeyBase64 = errors.New("IDENTITY_KEY is not valid base64")

	// ErrKMSConfigIncomplete indicates only one of KMS_PROVIDER and KMS_KEY_URI is set.
	ErrKMSConfigIncomplete = errors.New("KMS_PROVIDER and KMS_KEY_URI must be set together")

	// ErrKMSDecryptionFailed indicates the KMS could not unwrap the identity key.
	ErrKMSDecryptionFailed = errors.New("failed to decrypt identity key with KMS")

	// ErrInvalidKeySize indicates the key is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates a ciphertext and IV pair did not decrypt to valid plaintext.
	//
	// CBC carries no authentication tag, so this is raised only when the block or
	// padding structure is broken. The specific cause is not disclosed.
	ErrDecryptionFailed = errors.Wrap(errors.ErrUnprocessable, "decryption failed")
)
