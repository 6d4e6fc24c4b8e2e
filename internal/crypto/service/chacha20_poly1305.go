package service

import (
	"crypto/cipher"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// ChaCha20Poly1305Cipher implements the AEAD interface using ChaCha20-Poly1305.
//
// ChaCha20-Poly1305 combines the ChaCha20 stream cipher with the Poly1305 MAC.
// It's particularly efficient on platforms without hardware AES acceleration
// and produces sealed secrets with the same nonce and tag sizes as AES-GCM.
type ChaCha20Poly1305Cipher struct {
	aead   cipher.AEAD
	random io.Reader
}

// NewChaCha20Poly1305 creates a new ChaCha20-Poly1305 cipher instance.
//
// The key must be exactly 32 bytes. Returns an error if the key size is invalid.
func NewChaCha20Poly1305(key []byte, random io.Reader) (*ChaCha20Poly1305Cipher, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}

	return &ChaCha20Poly1305Cipher{aead: aead, random: random}, nil
}

// Encrypt encrypts plaintext using ChaCha20-Poly1305 under a fresh 12-byte nonce.
// The returned ciphertext includes the Poly1305 tag.
func (c *ChaCha20Poly1305Cipher) Encrypt(plaintext []byte) (ciphertext, nonce []byte, err error) {
	return seal(c.aead, c.random, plaintext)
}

// Decrypt verifies the Poly1305 tag and decrypts ciphertext.
func (c *ChaCha20Poly1305Cipher) Decrypt(ciphertext, nonce []byte) ([]byte, error) {
	return open(c.aead, ciphertext, nonce)
}
