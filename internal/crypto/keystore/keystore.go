// Package keystore provides the secure key store backends behind the key manager.
//
// Three backends are available:
//   - MemoryStore: process-local store used by tests and ephemeral sessions
//   - KeyringStore: the operating system credential store (Keychain, Credential
//     Manager, Secret Service, KWallet, pass, encrypted file) via 99designs/keyring
//   - KMSStore: key material wrapped by an external KMS and persisted in the database
//
// Every backend generates key material itself and reports failures with the
// crypto domain errors, so the key manager never has to know which one it uses.
package keystore

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
)

// newStoredKey draws fresh key material for spec from random.
func newStoredKey(spec cryptoDomain.KeySpec, random io.Reader) (*cryptoDomain.StoredKey, error) {
	material := make([]byte, cryptoDomain.KeySize)
	if _, err := io.ReadFull(random, material); err != nil {
		return nil, fmt.Errorf("%w: failed to generate key material: %v", cryptoDomain.ErrKeyGenerationFailed, err)
	}

	return &cryptoDomain.StoredKey{
		ID:        uuid.Must(uuid.NewV7()),
		Alias:     spec.Alias,
		Algorithm: spec.Algorithm,
		Policy:    spec.Policy,
		Material:  material,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// cloneStoredKey returns a copy whose material the caller may wipe.
func cloneStoredKey(key *cryptoDomain.StoredKey) *cryptoDomain.StoredKey {
	clone := *key
	clone.Material = append([]byte(nil), key.Material...)
	return &clone
}

// policyRejected builds the error returned when a backend cannot enforce spec.Policy.
func policyRejected(backend string, spec cryptoDomain.KeySpec) error {
	return fmt.Errorf(
		"%w: %s backend cannot enforce policy %q for key %s",
		cryptoDomain.ErrKeyGenerationFailed,
		backend,
		spec.Policy,
		spec.Alias,
	)
}
