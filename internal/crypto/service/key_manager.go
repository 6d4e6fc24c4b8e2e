package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
)

// KeyManagerService implements KeyManager over an injected SecureStore.
//
// It is the only component allowed to generate or delete the named key. The
// check-then-generate sequence in EnsureKey is not atomic in the store, so it is
// serialized by a mutex; concurrent callers observe the key generated by the
// first one instead of generating their own.
//
// The manager never falls back to another store: a store that cannot honor the
// spec's policy makes EnsureKey fail with ErrKeyGenerationFailed.
type KeyManagerService struct {
	store  SecureStore
	spec   cryptoDomain.KeySpec
	logger *slog.Logger
	mu     sync.Mutex
}

// NewKeyManager creates a new KeyManagerService for spec backed by store.
func NewKeyManager(
	store SecureStore,
	spec cryptoDomain.KeySpec,
	logger *slog.Logger,
) (*KeyManagerService, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &KeyManagerService{
		store:  store,
		spec:   spec,
		logger: logger,
	}, nil
}

// Spec returns the key specification the manager enforces.
func (km *KeyManagerService) Spec() cryptoDomain.KeySpec {
	return km.spec
}

// EnsureKey returns the existing key or generates it when absent.
//
// Repeated calls never regenerate an existing key, since that would make every
// previously sealed secret unreadable. An existing but unreadable key is reported
// as ErrKeyUnreadable and left untouched.
func (km *KeyManagerService) EnsureKey(ctx context.Context) (*cryptoDomain.KeyHandle, error) {
	km.mu.Lock()
	defer km.mu.Unlock()

	stored, err := km.store.Load(ctx, km.spec.Alias)
	if err == nil {
		return km.handleFor(stored)
	}
	if !errors.Is(err, cryptoDomain.ErrKeyNotFound) {
		return nil, km.mapStoreError(err)
	}

	stored, err = km.store.Generate(ctx, km.spec)
	if err != nil {
		km.logger.Error("key generation failed",
			slog.String("alias", km.spec.Alias),
			slog.String("policy", string(km.spec.Policy)),
			slog.Any("error", err),
		)
		return nil, km.mapGenerateError(err)
	}

	km.logger.Info("key generated",
		slog.String("alias", stored.Alias),
		slog.String("key_id", stored.ID.String()),
		slog.String("algorithm", string(stored.Algorithm)),
		slog.String("policy", string(stored.Policy)),
	)

	return km.handleFor(stored)
}

// Key returns the existing key and never generates one.
func (km *KeyManagerService) Key(ctx context.Context) (*cryptoDomain.KeyHandle, error) {
	stored, err := km.store.Load(ctx, km.spec.Alias)
	if err != nil {
		return nil, km.mapStoreError(err)
	}
	return km.handleFor(stored)
}

// HasKey reports whether a key exists under the configured alias.
// A key with unreadable material still exists.
func (km *KeyManagerService) HasKey(ctx context.Context) (bool, error) {
	handle, err := km.Key(ctx)
	switch {
	case err == nil:
		handle.Destroy()
		return true, nil
	case errors.Is(err, cryptoDomain.ErrKeyNotFound):
		return false, nil
	case errors.Is(err, cryptoDomain.ErrKeyUnreadable):
		return true, nil
	default:
		return false, err
	}
}

// DeleteKey removes the key from the secure store. A missing key is not an error.
func (km *KeyManagerService) DeleteKey(ctx context.Context) error {
	km.mu.Lock()
	defer km.mu.Unlock()

	if err := km.store.Delete(ctx, km.spec.Alias); err != nil {
		return km.mapStoreError(err)
	}

	km.logger.Warn("key deleted", slog.String("alias", km.spec.Alias))
	return nil
}

// handleFor converts a stored key into a handle, rejecting keys bound to another algorithm.
func (km *KeyManagerService) handleFor(stored *cryptoDomain.StoredKey) (*cryptoDomain.KeyHandle, error) {
	if stored.Algorithm != km.spec.Algorithm {
		cryptoDomain.Zero(stored.Material)
		return nil, fmt.Errorf(
			"%w: key %s is bound to %s, expected %s",
			cryptoDomain.ErrKeyUnreadable,
			stored.Alias,
			stored.Algorithm,
			km.spec.Algorithm,
		)
	}
	return cryptoDomain.NewKeyHandle(stored)
}

// mapStoreError keeps domain errors and reports anything else as an unavailable store.
func (km *KeyManagerService) mapStoreError(err error) error {
	if errors.Is(err, cryptoDomain.ErrKeyNotFound) ||
		errors.Is(err, cryptoDomain.ErrKeyUnreadable) ||
		errors.Is(err, cryptoDomain.ErrKeyStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", cryptoDomain.ErrKeyStoreUnavailable, err)
}

// mapGenerateError keeps store-unavailable errors and reports anything else as a rejected generation.
func (km *KeyManagerService) mapGenerateError(err error) error {
	if errors.Is(err, cryptoDomain.ErrKeyGenerationFailed) ||
		errors.Is(err, cryptoDomain.ErrKeyStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", cryptoDomain.ErrKeyGenerationFailed, err)
}
