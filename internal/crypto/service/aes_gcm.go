package service

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"io"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM
// (Advanced Encryption Standard with Galois/Counter Mode).
//
// Security properties:
//   - 256-bit key size
//   - 12-byte nonce (96 bits, drawn from the random source per encryption)
//   - 16-byte authentication tag (128 bits, appended to ciphertext)
//   - No associated data
//
// Thread safety:
//
//	The cipher instance is stateless and safe for concurrent use from multiple
//	goroutines. Each encryption operation draws its nonce independently; nonces
//	are never derived from a counter.
type AESGCMCipher struct {
	aead   cipher.AEAD
	random io.Reader
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// The key must be exactly 32 bytes. The random reader supplies nonces and must be
// a cryptographically secure source (crypto/rand.Reader in production).
func NewAESGCM(key []byte, random io.Reader) (*AESGCMCipher, error) {
	if len(key) != 32 {
		return nil, errors.New("key must be exactly 32 bytes")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead, random: random}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM.
//
// A fresh 12-byte nonce is read from the random source for every call. The returned
// ciphertext is len(plaintext)+16 bytes with the authentication tag at the end.
func (a *AESGCMCipher) Encrypt(plaintext []byte) (ciphertext, nonce []byte, err error) {
	return seal(a.aead, a.random, plaintext)
}

// Decrypt verifies the authentication tag and decrypts ciphertext.
//
// If verification fails no plaintext is returned.
func (a *AESGCMCipher) Decrypt(ciphertext, nonce []byte) ([]byte, error) {
	return open(a.aead, ciphertext, nonce)
}

// seal draws a nonce and seals plaintext. Shared by all AEAD implementations.
func seal(aead cipher.AEAD, random io.Reader, plaintext []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(random, nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = aead.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// open checks the nonce length before handing off to the AEAD, which panics on a bad nonce.
func open(aead cipher.AEAD, ciphertext, nonce []byte) ([]byte, error) {
	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("invalid nonce size: got %d, want %d", len(nonce), aead.NonceSize())
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}
