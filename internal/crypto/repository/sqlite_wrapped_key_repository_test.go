package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	"github.com/allisson/passvault/internal/database"
	apperrors "github.com/allisson/passvault/internal/errors"
	"github.com/allisson/passvault/internal/testutil"
)

func TestSQLiteWrappedKeyRepository(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	defer testutil.TeardownDB(t, db)

	ctx := context.Background()
	repo := NewSQLiteWrappedKeyRepository(db)
	key := newTestWrappedKey()

	_, err := repo.GetByAlias(ctx, key.Alias)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.Create(ctx, key))

	got, err := repo.GetByAlias(ctx, key.Alias)
	require.NoError(t, err)
	assert.Equal(t, key.ID, got.ID)
	assert.Equal(t, key.Alias, got.Alias)
	assert.Equal(t, key.Algorithm, got.Algorithm)
	assert.Equal(t, key.Policy, got.Policy)
	assert.Equal(t, key.WrappedKey, got.WrappedKey)
	assert.True(t, key.CreatedAt.Equal(got.CreatedAt))

	// alias is unique
	duplicate := newTestWrappedKey()
	assert.ErrorIs(t, repo.Create(ctx, duplicate), apperrors.ErrConflict)

	require.NoError(t, repo.DeleteByAlias(ctx, key.Alias))
	_, err = repo.GetByAlias(ctx, key.Alias)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, repo.DeleteByAlias(ctx, key.Alias))
}

func TestSQLiteWrappedKeyRepository_WithTx(t *testing.T) {
	db := testutil.SetupSQLiteDB(t)
	defer testutil.TeardownDB(t, db)

	ctx := context.Background()
	repo := NewSQLiteWrappedKeyRepository(db)
	txManager := database.NewTxManager(db)
	key := newTestWrappedKey()

	err := txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := repo.Create(ctx, key); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, err = repo.GetByAlias(ctx, cryptoDomain.DefaultKeyAlias)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
