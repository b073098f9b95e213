package service

import (
	"crypto/sha256"
	"encoding/hex"
)

type sha256FingerprintService struct{}

// NewSHA256FingerprintService creates a new SHA-256 fingerprint service.
//
// The digest is unkeyed and unsalted: equal identifiers always produce equal
// fingerprints, which is what makes lookup by fingerprint possible. The identifier
// space is small, so fingerprints must be treated as sensitive.
func NewSHA256FingerprintService() FingerprintService {
	return &sha256FingerprintService{}
}

// Fingerprint computes the SHA-256 hash of identifier and returns it as a hex string.
func (s *sha256FingerprintService) Fingerprint(identifier string) string {
	hash := sha256.Sum256([]byte(identifier))
	return hex.EncodeToString(hash[:])
}
