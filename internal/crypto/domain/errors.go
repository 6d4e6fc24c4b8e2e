package domain

import (
	"github.com/allisson/passvault/internal/errors"
)

// Key store and key lifecycle errors.
var (
	// ErrKeyStoreUnavailable indicates the secure store cannot be opened or queried.
	//
	// Fatal to any seal/open until the host environment resolves it. Never retried automatically.
	ErrKeyStoreUnavailable = errors.Wrap(errors.ErrUnavailable, "key store unavailable")

	// ErrKeyGenerationFailed indicates the secure store rejected the requested key policy.
	//
	// Callers may retry with a relaxed policy; that decision is never taken implicitly.
	ErrKeyGenerationFailed = errors.Wrap(errors.ErrInvalidInput, "key generation failed")

	// ErrKeyNotFound indicates no key exists under the configured alias.
	ErrKeyNotFound = errors.Wrap(errors.ErrNotFound, "key not found")

	// ErrKeyUnreadable indicates a key exists but its material cannot be used.
	ErrKeyUnreadable = errors.Wrap(errors.ErrIntegrity, "key unreadable")

	// ErrInvalidKeySpec indicates a key specification is incomplete.
	ErrInvalidKeySpec = errors.Wrap(errors.ErrInvalidInput, "invalid key spec")

	// ErrInvalidAuthPolicy indicates an unknown authentication policy.
	ErrInvalidAuthPolicy = errors.Wrap(errors.ErrInvalidInput, "invalid auth policy")
)

// Cipher errors.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the key material is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrEncryptionFailed indicates an unexpected failure while sealing.
	//
	// No partial state is persisted, so the operation is safe to retry.
	ErrEncryptionFailed = errors.Wrap(errors.ErrUnavailable, "encryption failed")

	// ErrAuthenticationFailed indicates the authentication tag did not verify.
	//
	// Wrong key, tampered ciphertext and wrong nonce are indistinguishable on purpose.
	// No plaintext is ever returned alongside this error.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrIntegrity, "authentication failed")
)

// Vault errors.
var (
	// ErrKeyBroken indicates the vault is in the key-broken state and needs an explicit Recover.
	ErrKeyBroken = errors.Wrap(errors.ErrFailedPrecondition, "vault key is broken, recovery required")
)
