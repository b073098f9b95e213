package service

import (
	"crypto/rand"
	"encoding/base64"
)

// credentialBytes is the entropy of every generated secret and token.
const credentialBytes = 32

func randomURLString() (string, error) {
	b := make([]byte, credentialBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
