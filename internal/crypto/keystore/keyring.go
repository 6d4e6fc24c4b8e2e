package keystore

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/99designs/keyring"
	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
)

// userAuthBackends are the keyring backends that only release items to an authenticated user session.
var userAuthBackends = []keyring.BackendType{
	keyring.KeychainBackend,
	keyring.WinCredBackend,
	keyring.SecretServiceBackend,
	keyring.KWalletBackend,
}

// KeyringConfig configures the operating system keyring backend.
type KeyringConfig struct {
	ServiceName  string   // Service/collection name items are stored under
	Backends     []string // Allowed backends in preference order; empty means all available
	FileDir      string   // Directory for the encrypted file backend
	FilePassword string   // Password for the file backend; prompted on the terminal when empty
}

// keyringRecord is the JSON payload stored in the keyring item.
type keyringRecord struct {
	ID        uuid.UUID               `json:"id"`
	Algorithm cryptoDomain.Algorithm  `json:"algorithm"`
	Policy    cryptoDomain.AuthPolicy `json:"policy"`
	Material  []byte                  `json:"material"`
	CreatedAt time.Time               `json:"created_at"`
}

// KeyringStore is a SecureStore backed by the operating system keyring.
//
// User-presence keys are only generated when every allowed backend ties item
// access to an unlocked user session; otherwise generation fails rather than
// silently downgrading to a weaker backend.
type KeyringStore struct {
	ring     keyring.Keyring
	userAuth bool
	random   io.Reader
}

// OpenKeyring opens the operating system keyring described by cfg.
func OpenKeyring(cfg KeyringConfig) (*KeyringStore, error) {
	backends, err := parseBackends(cfg.Backends)
	if err != nil {
		return nil, err
	}
	if len(backends) == 0 {
		backends = keyring.AvailableBackends()
	}

	passwordFunc := keyring.TerminalPrompt
	if cfg.FilePassword != "" {
		passwordFunc = keyring.FixedStringPrompt(cfg.FilePassword)
	}

	ring, err := keyring.Open(keyring.Config{
		ServiceName:                    cfg.ServiceName,
		AllowedBackends:                backends,
		KeychainTrustApplication:       true,
		KeychainSynchronizable:         false,
		KeychainAccessibleWhenUnlocked: true,
		FileDir:                        cfg.FileDir,
		FilePasswordFunc:               passwordFunc,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open keyring: %v", cryptoDomain.ErrKeyStoreUnavailable, err)
	}

	return NewKeyringStore(ring, supportsUserAuth(backends)), nil
}

// NewKeyringStore wraps an opened keyring. userAuth states whether the keyring
// enforces user authentication on item access.
func NewKeyringStore(ring keyring.Keyring, userAuth bool) *KeyringStore {
	return &KeyringStore{ring: ring, userAuth: userAuth, random: rand.Reader}
}

// Load returns the key stored under alias.
func (k *KeyringStore) Load(ctx context.Context, alias string) (*cryptoDomain.StoredKey, error) {
	item, err := k.ring.Get(alias)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, cryptoDomain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrKeyStoreUnavailable, err)
	}

	var record keyringRecord
	if err := json.Unmarshal(item.Data, &record); err != nil {
		return nil, fmt.Errorf("%w: malformed keyring item %s: %v", cryptoDomain.ErrKeyUnreadable, alias, err)
	}

	return &cryptoDomain.StoredKey{
		ID:        record.ID,
		Alias:     alias,
		Algorithm: record.Algorithm,
		Policy:    record.Policy,
		Material:  record.Material,
		CreatedAt: record.CreatedAt,
	}, nil
}

// Generate creates a new key for spec and writes it to the keyring.
func (k *KeyringStore) Generate(
	ctx context.Context,
	spec cryptoDomain.KeySpec,
) (*cryptoDomain.StoredKey, error) {
	if spec.Policy.RequiresUserAuth() && !k.userAuth {
		return nil, policyRejected("keyring", spec)
	}

	key, err := newStoredKey(spec, k.random)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(keyringRecord{
		ID:        key.ID,
		Algorithm: key.Algorithm,
		Policy:    key.Policy,
		Material:  key.Material,
		CreatedAt: key.CreatedAt,
	})
	if err != nil {
		cryptoDomain.Zero(key.Material)
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrKeyGenerationFailed, err)
	}

	err = k.ring.Set(keyring.Item{
		Key:                       spec.Alias,
		Data:                      data,
		Label:                     "passvault: " + spec.Alias,
		Description:               "passvault credential encryption key",
		KeychainNotSynchronizable: true,
	})
	if err != nil {
		cryptoDomain.Zero(key.Material)
		return nil, fmt.Errorf("%w: failed to write keyring item: %v", cryptoDomain.ErrKeyStoreUnavailable, err)
	}

	return key, nil
}

// Delete removes the key stored under alias.
func (k *KeyringStore) Delete(ctx context.Context, alias string) error {
	if err := k.ring.Remove(alias); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("%w: %v", cryptoDomain.ErrKeyStoreUnavailable, err)
	}
	return nil
}

// parseBackends converts configured backend names into keyring backend types.
func parseBackends(names []string) ([]keyring.BackendType, error) {
	known := []keyring.BackendType{
		keyring.KeychainBackend,
		keyring.WinCredBackend,
		keyring.SecretServiceBackend,
		keyring.KWalletBackend,
		keyring.KeyCtlBackend,
		keyring.PassBackend,
		keyring.FileBackend,
	}

	backends := make([]keyring.BackendType, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		backend := keyring.BackendType(name)
		if !slices.Contains(known, backend) {
			return nil, fmt.Errorf("%w: unknown keyring backend %q", cryptoDomain.ErrKeyStoreUnavailable, name)
		}
		backends = append(backends, backend)
	}
	return backends, nil
}

// supportsUserAuth reports whether every backend gates access on an authenticated user session.
func supportsUserAuth(backends []keyring.BackendType) bool {
	if len(backends) == 0 {
		return false
	}
	for _, backend := range backends {
		if !slices.Contains(userAuthBackends, backend) {
			return false
		}
	}
	return true
}
