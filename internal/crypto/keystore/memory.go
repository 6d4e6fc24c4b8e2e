package keystore

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	apperrors "github.com/allisson/passvault/internal/errors"
)

// MemoryStore is an in-process SecureStore.
//
// Keys live only as long as the store value. It can simulate an unreachable store,
// a device without user-authentication support and corrupted key material.
type MemoryStore struct {
	mu          sync.Mutex
	keys        map[string]*cryptoDomain.StoredKey
	random      io.Reader
	userAuth    bool
	unavailable bool
	generated   int
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithUserAuthSupport sets whether the store accepts keys gated by user authentication.
func WithUserAuthSupport(supported bool) MemoryOption {
	return func(m *MemoryStore) {
		m.userAuth = supported
	}
}

// WithRandom sets the source of key material.
func WithRandom(random io.Reader) MemoryOption {
	return func(m *MemoryStore) {
		m.random = random
	}
}

// NewMemoryStore creates an empty MemoryStore that supports every policy.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		keys:     make(map[string]*cryptoDomain.StoredKey),
		random:   rand.Reader,
		userAuth: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load returns a copy of the key stored under alias.
func (m *MemoryStore) Load(ctx context.Context, alias string) (*cryptoDomain.StoredKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.unavailable {
		return nil, cryptoDomain.ErrKeyStoreUnavailable
	}

	key, ok := m.keys[alias]
	if !ok {
		return nil, cryptoDomain.ErrKeyNotFound
	}
	return cloneStoredKey(key), nil
}

// Generate creates and stores a new key for spec.
func (m *MemoryStore) Generate(
	ctx context.Context,
	spec cryptoDomain.KeySpec,
) (*cryptoDomain.StoredKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.unavailable {
		return nil, cryptoDomain.ErrKeyStoreUnavailable
	}
	if spec.Policy.RequiresUserAuth() && !m.userAuth {
		return nil, policyRejected("memory", spec)
	}
	if _, exists := m.keys[spec.Alias]; exists {
		return nil, apperrors.Wrap(apperrors.ErrConflict, fmt.Sprintf("key %s already exists", spec.Alias))
	}

	key, err := newStoredKey(spec, m.random)
	if err != nil {
		return nil, err
	}
	m.keys[spec.Alias] = key
	m.generated++

	return cloneStoredKey(key), nil
}

// Delete removes the key stored under alias.
func (m *MemoryStore) Delete(ctx context.Context, alias string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.unavailable {
		return cryptoDomain.ErrKeyStoreUnavailable
	}

	if key, ok := m.keys[alias]; ok {
		cryptoDomain.Zero(key.Material)
		delete(m.keys, alias)
	}
	return nil
}

// SetUnavailable toggles whether every operation fails with ErrKeyStoreUnavailable.
func (m *MemoryStore) SetUnavailable(unavailable bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unavailable = unavailable
}

// Corrupt truncates the material of the key stored under alias.
func (m *MemoryStore) Corrupt(alias string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if key, ok := m.keys[alias]; ok {
		key.Material = key.Material[:len(key.Material)/2]
	}
}

// Generated returns how many keys the store has generated so far.
func (m *MemoryStore) Generated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generated
}
