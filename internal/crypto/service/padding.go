package service

import (
	"crypto/subtle"
	"errors"
)

var errInvalidPadding = errors.New("invalid padding")

// pkcs7Pad appends PKCS#7 padding so the result is a multiple of blockSize.
// A full block of padding is added when the input is already aligned.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

// pkcs7Unpad strips and validates PKCS#7 padding. Every padding byte is checked.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errInvalidPadding
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, errInvalidPadding
	}

	good := 1
	for _, b := range data[len(data)-padLen:] {
		good &= subtle.ConstantTimeByteEq(b, byte(padLen))
	}
	if good != 1 {
		return nil, errInvalidPadding
	}

	return data[:len(data)-padLen], nil
}
