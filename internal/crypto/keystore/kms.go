package keystore

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	apperrors "github.com/allisson/passvault/internal/errors"
)

// WrappedKeyRepository persists KMS-wrapped keys.
type WrappedKeyRepository interface {
	Create(ctx context.Context, key *cryptoDomain.WrappedKey) error
	GetByAlias(ctx context.Context, alias string) (*cryptoDomain.WrappedKey, error)
	DeleteByAlias(ctx context.Context, alias string) error
}

// KMSStore keeps key material encrypted by an external KMS and stores the
// wrapped bytes in the database. The KMS never releases material without the
// service credentials, but it cannot require a user to be present, so
// user-presence keys are rejected.
type KMSStore struct {
	keeper cryptoDomain.KMSKeeper
	repo   WrappedKeyRepository
	random io.Reader
}

// NewKMSStore creates a KMSStore.
func NewKMSStore(keeper cryptoDomain.KMSKeeper, repo WrappedKeyRepository) *KMSStore {
	return &KMSStore{keeper: keeper, repo: repo, random: rand.Reader}
}

// Load fetches and unwraps the key stored under alias.
func (k *KMSStore) Load(ctx context.Context, alias string) (*cryptoDomain.StoredKey, error) {
	wrapped, err := k.repo.GetByAlias(ctx, alias)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, cryptoDomain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrKeyStoreUnavailable, err)
	}

	material, err := k.keeper.Decrypt(ctx, wrapped.WrappedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unwrap key %s: %v", cryptoDomain.ErrKeyUnreadable, alias, err)
	}
	if len(material) != cryptoDomain.KeySize {
		cryptoDomain.Zero(material)
		return nil, fmt.Errorf("%w: unwrapped key %s has %d bytes", cryptoDomain.ErrKeyUnreadable, alias, len(material))
	}

	return &cryptoDomain.StoredKey{
		ID:        wrapped.ID,
		Alias:     wrapped.Alias,
		Algorithm: wrapped.Algorithm,
		Policy:    wrapped.Policy,
		Material:  material,
		CreatedAt: wrapped.CreatedAt,
	}, nil
}

// Generate creates key material, wraps it with the KMS and persists the result.
// When another process persisted a key under the same alias first, its key is
// loaded and returned in place of the fresh material.
func (k *KMSStore) Generate(ctx context.Context, spec cryptoDomain.KeySpec) (*cryptoDomain.StoredKey, error) {
	if spec.Policy.RequiresUserAuth() {
		return nil, policyRejected("kms", spec)
	}

	key, err := newStoredKey(spec, k.random)
	if err != nil {
		return nil, err
	}

	ciphertext, err := k.keeper.Encrypt(ctx, key.Material)
	if err != nil {
		cryptoDomain.Zero(key.Material)
		return nil, fmt.Errorf("%w: failed to wrap key: %v", cryptoDomain.ErrKeyStoreUnavailable, err)
	}

	err = k.repo.Create(ctx, &cryptoDomain.WrappedKey{
		ID:         key.ID,
		Alias:      key.Alias,
		Algorithm:  key.Algorithm,
		Policy:     key.Policy,
		WrappedKey: ciphertext,
		CreatedAt:  key.CreatedAt,
	})
	if err != nil {
		cryptoDomain.Zero(key.Material)
		if errors.Is(err, apperrors.ErrConflict) {
			return k.Load(ctx, spec.Alias)
		}
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrKeyStoreUnavailable, err)
	}

	return key, nil
}

// Delete removes the wrapped key stored under alias.
func (k *KMSStore) Delete(ctx context.Context, alias string) error {
	if err := k.repo.DeleteByAlias(ctx, alias); err != nil {
		return fmt.Errorf("%w: %v", cryptoDomain.ErrKeyStoreUnavailable, err)
	}
	return nil
}
