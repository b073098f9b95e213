// Package domain defines the key material and error kinds of the identity cipher.
//
// Identifiers are encrypted with AES-256 in CBC mode. The key is loaded once at
// startup, optionally unwrapped by a KMS, and held only inside the AES key schedule
// for the rest of the process lifetime.
package domain

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32

	// BlockSize is the AES block length in bytes, which is also the CBC IV length.
	BlockSize = 16
)

// KeySource describes where the identity key came from. It is logged at startup
// in place of any key material.
type KeySource string

const (
	// KeySourcePlaintext means IDENTITY_KEY carried the raw base64 key.
	KeySourcePlaintext KeySource = "plaintext"

	// KeySourceKMS means IDENTITY_KEY carried a KMS ciphertext that was unwrapped at startup.
	KeySourceKMS KeySource = "kms"
)
