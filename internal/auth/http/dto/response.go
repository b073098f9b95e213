package dto

import "time"

// IssueTokenResponse contains a newly issued token.
// The token is only returned once.
type IssueTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
