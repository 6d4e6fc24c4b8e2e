package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	apperrors "github.com/allisson/passvault/internal/errors"
)

func TestMySQLWrappedKeyRepository_Create(t *testing.T) {
	ctx := context.Background()
	key := newTestWrappedKey()
	id, err := key.ID.MarshalBinary()
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`INSERT INTO vault_keys`).
			WithArgs(id, key.Alias, key.Algorithm, key.Policy, key.WrappedKey, key.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewMySQLWrappedKeyRepository(db)
		assert.NoError(t, repo.Create(ctx, key))
	})

	t.Run("duplicate alias", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`INSERT INTO vault_keys`).
			WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'default' for key 'alias'"})

		repo := NewMySQLWrappedKeyRepository(db)
		assert.ErrorIs(t, repo.Create(ctx, key), apperrors.ErrConflict)
	})
}

func TestMySQLWrappedKeyRepository_GetByAlias(t *testing.T) {
	ctx := context.Background()
	key := newTestWrappedKey()
	columns := []string{"id", "alias", "algorithm", "policy", "wrapped_key", "created_at"}
	id, err := key.ID.MarshalBinary()
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT id, alias, algorithm, policy, wrapped_key, created_at`).
			WithArgs(key.Alias).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(
				id, key.Alias, string(key.Algorithm), string(key.Policy), key.WrappedKey, key.CreatedAt,
			))

		repo := NewMySQLWrappedKeyRepository(db)
		got, err := repo.GetByAlias(ctx, key.Alias)
		require.NoError(t, err)
		assert.Equal(t, key, got)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT id, alias`).WillReturnRows(sqlmock.NewRows(columns))

		repo := NewMySQLWrappedKeyRepository(db)
		_, err := repo.GetByAlias(ctx, key.Alias)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT id, alias`).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(
				[]byte{0x01}, key.Alias, string(key.Algorithm), string(key.Policy), key.WrappedKey, key.CreatedAt,
			))

		repo := NewMySQLWrappedKeyRepository(db)
		_, err := repo.GetByAlias(ctx, key.Alias)
		assert.ErrorContains(t, err, "failed to unmarshal wrapped key id")
	})
}

func TestMySQLWrappedKeyRepository_DeleteByAlias(t *testing.T) {
	ctx := context.Background()

	db, mock := newMockDB(t)
	mock.ExpectExec(`DELETE FROM vault_keys WHERE alias = \?`).
		WithArgs(cryptoDomain.DefaultKeyAlias).
		WillReturnError(errors.New("lock wait timeout"))

	repo := NewMySQLWrappedKeyRepository(db)
	assert.ErrorContains(t, repo.DeleteByAlias(ctx, cryptoDomain.DefaultKeyAlias), "lock wait timeout")
}
