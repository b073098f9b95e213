// Package service provides the cipher and KMS services behind identity encryption.
package service

// BlockCipher encrypts and decrypts raw bytes under a fixed key.
//
// Implementations must be safe for concurrent use. Every Encrypt call draws a fresh
// IV, and the IV returned with a ciphertext is the only one that decrypts it.
type BlockCipher interface {
	// Encrypt pads and encrypts plaintext, returning the ciphertext and the random IV used.
	Encrypt(plaintext []byte) (ciphertext []byte, iv []byte, err error)

	// Decrypt reverses Encrypt. It returns domain.ErrDecryptionFailed when the IV or
	// ciphertext is malformed or the padding does not validate.
	Decrypt(ciphertext []byte, iv []byte) ([]byte, error)
}
