package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/idvault/internal/crypto/domain"
)

// AESCBC implements BlockCipher with AES-256 in CBC mode and PKCS#7 padding.
//
// The struct holds only the expanded AES key schedule, which is read-only after
// construction. A new CBC encrypter or decrypter is created for each call, so a
// single AESCBC can be shared across goroutines.
//
// CBC is not authenticated. A modified ciphertext or IV is detected only when it
// breaks the padding, so ciphertext and IV must be stored and moved as one unit.
type AESCBC struct {
	block cipher.Block
	rand  io.Reader
}

// NewAESCBC builds the cipher from a 32-byte key. The caller may zero key after
// this returns; the cipher keeps its own key schedule.
func NewAESCBC(key []byte) (*AESCBC, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	return &AESCBC{block: block, rand: rand.Reader}, nil
}

// Encrypt pads plaintext and encrypts it under a freshly generated 16-byte IV.
func (a *AESCBC) Encrypt(plaintext []byte) ([]byte, []byte, error) {
	iv := make([]byte, cryptoDomain.BlockSize)
	if _, err := io.ReadFull(a.rand, iv); err != nil {
		return nil, nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	padded := pkcs7Pad(plaintext, cryptoDomain.BlockSize)
	defer cryptoDomain.Zero(padded)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(a.block, iv).CryptBlocks(ciphertext, padded)

	return ciphertext, iv, nil
}

// Decrypt decrypts ciphertext with iv and removes the padding.
func (a *AESCBC) Decrypt(ciphertext []byte, iv []byte) ([]byte, error) {
	if len(iv) != cryptoDomain.BlockSize {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	if len(ciphertext) == 0 || len(ciphertext)%cryptoDomain.BlockSize != 0 {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(a.block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, cryptoDomain.BlockSize)
	if err != nil {
		cryptoDomain.Zero(plaintext)
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	return unpadded, nil
}
