// Package domain defines authentication and authorization domain models.
// Clients hold a flat set of capabilities that gate identity document operations.
package domain

import (
	"fmt"
	"strings"
)

// Capability defines the types of operations a client may perform.
type Capability string

const (
	// ReadCapability allows reading document metadata, listing, lookup and verification.
	ReadCapability Capability = "read"

	// WriteCapability allows registering identity documents.
	WriteCapability Capability = "write"

	// DeleteCapability allows removing identity documents.
	DeleteCapability Capability = "delete"

	// RevealCapability allows decrypting stored identifiers.
	RevealCapability Capability = "reveal"
)

// AllCapabilities lists every known capability in a stable order.
var AllCapabilities = []Capability{ReadCapability, WriteCapability, DeleteCapability, RevealCapability}

// ParseCapabilities parses a comma-separated capability list such as "read,write".
// Duplicates are dropped and whitespace around items is ignored.
func ParseCapabilities(s string) ([]Capability, error) {
	capabilities := make([]Capability, 0, len(AllCapabilities))
	seen := make(map[Capability]bool)

	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		capability := Capability(item)
		if !capability.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCapability, item)
		}
		if seen[capability] {
			continue
		}
		seen[capability] = true
		capabilities = append(capabilities, capability)
	}

	if len(capabilities) == 0 {
		return nil, ErrInvalidCapability
	}
	return capabilities, nil
}

// IsValid reports whether c is a known capability.
func (c Capability) IsValid() bool {
	switch c {
	case ReadCapability, WriteCapability, DeleteCapability, RevealCapability:
		return true
	}
	return false
}
