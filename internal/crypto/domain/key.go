// Package domain defines the core models of the credential encryption-at-rest core:
// key specifications and handles, sealed secrets, the vault state machine and the
// error taxonomy shared by the key manager, the authenticated cipher and the vault.
package domain

import (
	"fmt"
	"time"

	"github.com/awnumar/memguard"
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/passvault/internal/validation"
)

// KeySpec describes the single named key the application keeps in the secure store.
type KeySpec struct {
	Alias     string     // Stable name of the key in the secure store
	Algorithm Algorithm  // AEAD algorithm the key is bound to
	Policy    AuthPolicy // User-authentication gating enforced by the store
}

// Validate checks that the spec can be handed to a secure store.
// Algorithm and policy failures keep their own sentinels.
func (s KeySpec) Validate() error {
	err := validation.ValidateStruct(&s,
		validation.Field(&s.Alias,
			validation.Required.Error("key alias must not be empty"),
			appValidation.NotBlank,
			appValidation.NoWhitespace,
			appValidation.PrintableText,
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKeySpec, err)
	}
	if _, err := ParseAlgorithm(string(s.Algorithm)); err != nil {
		return err
	}
	if _, err := ParseAuthPolicy(string(s.Policy)); err != nil {
		return err
	}
	return nil
}

// StoredKey is the record a secure store returns when a key is generated or loaded.
// Material is raw key bytes; it is moved into a KeyHandle and wiped right away.
type StoredKey struct {
	ID        uuid.UUID
	Alias     string
	Algorithm Algorithm
	Policy    AuthPolicy
	Material  []byte
	CreatedAt time.Time
}

// KeyHandle is a transient reference to the key living in the secure store.
//
// The key material is sealed in a memguard enclave: it stays encrypted in memory
// and is only decrypted into a guarded buffer for the duration of one cipher
// operation. Handles must not be cached across seal/open calls or persisted.
type KeyHandle struct {
	id        uuid.UUID
	alias     string
	algorithm Algorithm
	policy    AuthPolicy
	createdAt time.Time
	enclave   *memguard.Enclave
}

// NewKeyHandle builds a handle from a stored key. The stored material is wiped,
// whether or not the handle could be built.
func NewKeyHandle(stored *StoredKey) (*KeyHandle, error) {
	if stored == nil {
		return nil, ErrKeyUnreadable
	}
	if len(stored.Material) != KeySize {
		Zero(stored.Material)
		return nil, fmt.Errorf(
			"%w: key %s has %d bytes of material, expected %d",
			ErrKeyUnreadable,
			stored.Alias,
			len(stored.Material),
			KeySize,
		)
	}

	enclave := memguard.NewEnclave(stored.Material)
	stored.Material = nil

	return &KeyHandle{
		id:        stored.ID,
		alias:     stored.Alias,
		algorithm: stored.Algorithm,
		policy:    stored.Policy,
		createdAt: stored.CreatedAt,
		enclave:   enclave,
	}, nil
}

// ID returns the identifier assigned to the key at generation time.
func (h *KeyHandle) ID() uuid.UUID { return h.id }

// Alias returns the secure store alias of the key.
func (h *KeyHandle) Alias() string { return h.alias }

// Algorithm returns the AEAD algorithm the key is bound to.
func (h *KeyHandle) Algorithm() Algorithm { return h.algorithm }

// Policy returns the authentication policy the key was generated with.
func (h *KeyHandle) Policy() AuthPolicy { return h.policy }

// CreatedAt returns the key generation time.
func (h *KeyHandle) CreatedAt() time.Time { return h.createdAt }

// Open decrypts the key material into a locked buffer.
// The caller must Destroy the buffer as soon as the cipher has been built.
func (h *KeyHandle) Open() (*memguard.LockedBuffer, error) {
	if h == nil || h.enclave == nil {
		return nil, ErrKeyUnreadable
	}
	buf, err := h.enclave.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyUnreadable, err)
	}
	return buf, nil
}

// Destroy drops the reference to the sealed material. The handle is unusable afterwards.
func (h *KeyHandle) Destroy() {
	if h == nil {
		return
	}
	h.enclave = nil
}
