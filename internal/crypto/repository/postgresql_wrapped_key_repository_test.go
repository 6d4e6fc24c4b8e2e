package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	apperrors "github.com/allisson/passvault/internal/errors"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func newTestWrappedKey() *cryptoDomain.WrappedKey {
	return &cryptoDomain.WrappedKey{
		ID:         uuid.Must(uuid.NewV7()),
		Alias:      cryptoDomain.DefaultKeyAlias,
		Algorithm:  cryptoDomain.AESGCM,
		Policy:     cryptoDomain.PolicyNone,
		WrappedKey: []byte("wrapped-key-material"),
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestPostgreSQLWrappedKeyRepository_Create(t *testing.T) {
	ctx := context.Background()
	key := newTestWrappedKey()

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`INSERT INTO vault_keys`).
			WithArgs(key.ID, key.Alias, key.Algorithm, key.Policy, key.WrappedKey, key.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLWrappedKeyRepository(db)
		assert.NoError(t, repo.Create(ctx, key))
	})

	t.Run("duplicate alias", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`INSERT INTO vault_keys`).
			WillReturnError(errors.New("duplicate key value violates unique constraint"))

		repo := NewPostgreSQLWrappedKeyRepository(db)
		err := repo.Create(ctx, key)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("database error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`INSERT INTO vault_keys`).
			WillReturnError(errors.New("connection reset by peer"))

		repo := NewPostgreSQLWrappedKeyRepository(db)
		err := repo.Create(ctx, key)
		assert.ErrorContains(t, err, "failed to create wrapped key")
		assert.NotErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestPostgreSQLWrappedKeyRepository_GetByAlias(t *testing.T) {
	ctx := context.Background()
	key := newTestWrappedKey()
	columns := []string{"id", "alias", "algorithm", "policy", "wrapped_key", "created_at"}

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT id, alias, algorithm, policy, wrapped_key, created_at`).
			WithArgs(key.Alias).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(
				key.ID.String(), key.Alias, string(key.Algorithm), string(key.Policy), key.WrappedKey, key.CreatedAt,
			))

		repo := NewPostgreSQLWrappedKeyRepository(db)
		got, err := repo.GetByAlias(ctx, key.Alias)
		require.NoError(t, err)
		assert.Equal(t, key, got)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT id, alias`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(columns))

		repo := NewPostgreSQLWrappedKeyRepository(db)
		got, err := repo.GetByAlias(ctx, "missing")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.Nil(t, got)
	})

	t.Run("query error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT id, alias`).WillReturnError(errors.New("connection reset"))

		repo := NewPostgreSQLWrappedKeyRepository(db)
		_, err := repo.GetByAlias(ctx, key.Alias)
		assert.ErrorContains(t, err, "failed to get wrapped key")
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostgreSQLWrappedKeyRepository_DeleteByAlias(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`DELETE FROM vault_keys WHERE alias = \$1`).
			WithArgs(cryptoDomain.DefaultKeyAlias).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLWrappedKeyRepository(db)
		assert.NoError(t, repo.DeleteByAlias(ctx, cryptoDomain.DefaultKeyAlias))
	})

	t.Run("error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`DELETE FROM vault_keys`).WillReturnError(errors.New("connection reset"))

		repo := NewPostgreSQLWrappedKeyRepository(db)
		assert.ErrorContains(t, repo.DeleteByAlias(ctx, cryptoDomain.DefaultKeyAlias), "failed to delete wrapped key")
	})
}
