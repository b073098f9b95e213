package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is an issued bearer token. Only the SHA-256 hash of the token is stored.
type Token struct {
	ID        uuid.UUID
	TokenHash string
	ClientID  uuid.UUID
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IssueTokenInput contains client credentials exchanged for a token.
type IssueTokenInput struct {
	ClientID     uuid.UUID
	ClientSecret string
}

// IssueTokenOutput contains a newly issued token.
type IssueTokenOutput struct {
	PlainToken string
	ExpiresAt  time.Time
}
