// Package service provides the key manager and the authenticated cipher of the
// credential encryption-at-rest core, plus the AEAD primitives (AES-256-GCM,
// ChaCha20-Poly1305) and the KMS keeper opener they build on.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
)

// AEAD defines an authenticated cipher bound to one key.
type AEAD interface {
	// Encrypt encrypts plaintext under a freshly drawn nonce and returns the
	// ciphertext with the tag appended, and the nonce.
	Encrypt(plaintext []byte) (ciphertext, nonce []byte, err error)

	// Decrypt verifies the tag and decrypts ciphertext with the given nonce.
	Decrypt(ciphertext, nonce []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// SecureStore is the secure key store collaborator behind the key manager.
//
// The store is the single source of truth for the named key. Implementations
// report a missing alias with cryptoDomain.ErrKeyNotFound, a store that cannot
// be reached with cryptoDomain.ErrKeyStoreUnavailable and a policy they cannot
// enforce with cryptoDomain.ErrKeyGenerationFailed.
type SecureStore interface {
	// Load returns the key stored under alias.
	Load(ctx context.Context, alias string) (*cryptoDomain.StoredKey, error)

	// Generate creates a fresh key for spec and stores it under spec.Alias.
	Generate(ctx context.Context, spec cryptoDomain.KeySpec) (*cryptoDomain.StoredKey, error)

	// Delete removes the key stored under alias. Deleting a missing key is not an error.
	Delete(ctx context.Context, alias string) error
}

// KeyManager owns the lifecycle of the single named key.
type KeyManager interface {
	// EnsureKey returns the existing key or generates it when absent. Never regenerates.
	EnsureKey(ctx context.Context) (*cryptoDomain.KeyHandle, error)

	// Key returns the existing key without ever generating one.
	Key(ctx context.Context) (*cryptoDomain.KeyHandle, error)

	// HasKey reports whether the key exists in the secure store.
	HasKey(ctx context.Context) (bool, error)

	// DeleteKey removes the key. A missing key is not an error.
	DeleteKey(ctx context.Context) error

	// Spec returns the key specification the manager enforces.
	Spec() cryptoDomain.KeySpec
}

// AuthenticatedCipher performs stateless authenticated encryption under a key handle.
type AuthenticatedCipher interface {
	// Encrypt seals plaintext under handle with no associated data.
	Encrypt(handle *cryptoDomain.KeyHandle, plaintext []byte) (cryptoDomain.SealedSecret, error)

	// Decrypt opens a sealed secret under handle.
	Decrypt(handle *cryptoDomain.KeyHandle, sealed cryptoDomain.SealedSecret) ([]byte, error)
}
