package service

import (
	"crypto/sha256"
	"encoding/hex"

	apperrors "github.com/allisson/idvault/internal/errors"
)

type tokenService struct{}

// NewTokenService creates a TokenService that stores tokens as SHA-256 hex digests.
func NewTokenService() TokenService {
	return &tokenService{}
}

// GenerateToken creates a 32-byte random token, base64url encoded, and its digest.
func (t *tokenService) GenerateToken() (string, string, error) {
	plainToken, err := randomURLString()
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}
	return plainToken, t.HashToken(plainToken), nil
}

// HashToken returns the lowercase hex SHA-256 digest of plainToken.
func (t *tokenService) HashToken(plainToken string) string {
	sum := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(sum[:])
}
