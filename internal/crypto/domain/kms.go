package domain

import "context"

// KMSKeeper wraps and unwraps key material with a remote or local KMS key.
// *secrets.Keeper from gocloud.dev satisfies this interface.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers from gocloud secrets URIs
// (base64key://, gcpkms://, awskms://, azurekeyvault://, hashivault://).
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}
