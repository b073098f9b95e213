package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Client represents an API client that authenticates with a secret and acts
// within its capabilities.
type Client struct {
	ID           uuid.UUID
	Secret       string //nolint:gosec // argon2id hash, not plaintext
	Name         string
	IsActive     bool
	Capabilities []Capability
	CreatedAt    time.Time
}

// HasCapability reports whether the client was granted capability.
func (c *Client) HasCapability(capability Capability) bool {
	if capability == "" {
		return false
	}
	return slices.Contains(c.Capabilities, capability)
}

// CreateClientInput contains the parameters for creating a new client.
// The secret is generated and cannot be chosen by the caller.
type CreateClientInput struct {
	Name         string
	IsActive     bool
	Capabilities []Capability
}

// CreateClientOutput contains the result of creating a new client.
// SECURITY: PlainSecret is only returned once and is never retrievable again.
type CreateClientOutput struct {
	ID          uuid.UUID
	PlainSecret string
}
