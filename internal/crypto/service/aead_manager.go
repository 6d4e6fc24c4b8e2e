package service

import (
	"crypto/rand"
	"io"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
)

// AEADManagerService implements the AEADManager interface for creating AEAD cipher instances.
type AEADManagerService struct {
	random io.Reader
}

// NewAEADManager creates a new AEADManagerService drawing nonces from crypto/rand.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{random: rand.Reader}
}

// NewAEADManagerWithRandom creates an AEADManagerService drawing nonces from random.
func NewAEADManagerWithRandom(random io.Reader) *AEADManagerService {
	return &AEADManagerService{random: random}
}

// CreateCipher creates an AEAD cipher instance for the specified algorithm.
// Returns ErrInvalidKeySize if key is not 32 bytes or ErrUnsupportedAlgorithm if algorithm is unknown.
func (am *AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	switch alg {
	case cryptoDomain.AESGCM:
		return NewAESGCM(key, am.random)
	case cryptoDomain.ChaCha20:
		return NewChaCha20Poly1305(key, am.random)
	default:
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
}
