package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/idvault/internal/errors"
)

type secretService struct {
	hasher *pwdhash.PasswordHasher
}

// NewSecretService creates a SecretService backed by argon2id with the moderate policy.
func NewSecretService() SecretService {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		// Only reachable with an invalid built-in policy.
		panic(err)
	}
	return &secretService{hasher: hasher}
}

// GenerateSecret creates a 32-byte random secret, base64url encoded.
func (s *secretService) GenerateSecret() (string, string, error) {
	plainSecret, err := randomURLString()
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random secret")
	}

	hashedSecret, err := s.HashSecret(plainSecret)
	if err != nil {
		return "", "", err
	}
	return plainSecret, hashedSecret, nil
}

// HashSecret hashes plainSecret into a PHC-formatted argon2id string.
func (s *secretService) HashSecret(plainSecret string) (string, error) {
	hashedSecret, err := s.hasher.Hash([]byte(plainSecret))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash secret")
	}
	return hashedSecret, nil
}

// CompareSecret verifies plainSecret against hashedSecret. Malformed hashes never match.
func (s *secretService) CompareSecret(plainSecret string, hashedSecret string) bool {
	ok, err := s.hasher.Verify([]byte(plainSecret), hashedSecret)
	return err == nil && ok
}
