package domain

import "strings"

// IdentifierLength is the number of digits in a national identifier.
const IdentifierLength = 12

// IsValidFormat reports whether candidate is a national identifier once leading and
// trailing whitespace is removed: exactly twelve ASCII digits. An empty candidate
// is not valid.
func IsValidFormat(candidate string) bool {
	trimmed := strings.TrimSpace(candidate)
	if len(trimmed) != IdentifierLength {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] < '0' || trimmed[i] > '9' {
			return false
		}
	}
	return true
}

// NormalizeIdentifier trims candidate and returns it if it is a valid identifier.
// Fingerprints are computed over the normalized form, so every caller that stores or
// looks up a document must go through here first.
func NormalizeIdentifier(candidate string) (string, error) {
	if !IsValidFormat(candidate) {
		return "", ErrInvalidIdentifier
	}
	return strings.TrimSpace(candidate), nil
}
