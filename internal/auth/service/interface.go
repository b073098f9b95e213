// Package service provides credential services for API clients: secret hashing with
// argon2id and opaque bearer tokens stored as SHA-256 digests.
package service

// SecretService generates and verifies client secrets.
type SecretService interface {
	// GenerateSecret returns a new random secret and its argon2id hash. Only the hash is stored.
	GenerateSecret() (plainSecret string, hashedSecret string, err error)

	HashSecret(plainSecret string) (hashedSecret string, err error)

	// CompareSecret reports whether plainSecret matches hashedSecret in constant time.
	CompareSecret(plainSecret string, hashedSecret string) bool
}

// TokenService generates bearer tokens and the digests used to look them up.
type TokenService interface {
	GenerateToken() (plainToken string, tokenHash string, err error)
	HashToken(plainToken string) string
}
