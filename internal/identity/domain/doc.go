// Package domain defines identity documents and the validation rules for national
// identifiers.
//
// An identifier is never stored in plaintext. Each document carries the AES-256-CBC
// ciphertext with its IV for authorized retrieval, and an unkeyed SHA-256 fingerprint
// for equality lookups.
package domain
