package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	"github.com/allisson/passvault/internal/database"
	apperrors "github.com/allisson/passvault/internal/errors"
)

// SQLiteWrappedKeyRepository implements wrapped key persistence for SQLite.
// Key ids are stored as their canonical text form.
type SQLiteWrappedKeyRepository struct {
	db *sql.DB
}

// Create inserts a wrapped key. A duplicate alias fails with ErrConflict.
func (s *SQLiteWrappedKeyRepository) Create(ctx context.Context, key *cryptoDomain.WrappedKey) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO vault_keys (id, alias, algorithm, policy, wrapped_key, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		key.ID.String(),
		key.Alias,
		key.Algorithm,
		key.Policy,
		key.WrappedKey,
		key.CreatedAt,
	)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "wrapped key alias already exists")
		}
		return apperrors.Wrap(err, "failed to create wrapped key")
	}
	return nil
}

// GetByAlias returns the wrapped key stored under alias.
func (s *SQLiteWrappedKeyRepository) GetByAlias(
	ctx context.Context,
	alias string,
) (*cryptoDomain.WrappedKey, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, alias, algorithm, policy, wrapped_key, created_at
			  FROM vault_keys WHERE alias = ?`

	var key cryptoDomain.WrappedKey
	var id string
	err := querier.QueryRowContext(ctx, query, alias).Scan(
		&id,
		&key.Alias,
		&key.Algorithm,
		&key.Policy,
		&key.WrappedKey,
		&key.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get wrapped key")
	}

	key.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse wrapped key id")
	}
	return &key, nil
}

// DeleteByAlias removes the wrapped key stored under alias.
func (s *SQLiteWrappedKeyRepository) DeleteByAlias(ctx context.Context, alias string) error {
	querier := database.GetTx(ctx, s.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM vault_keys WHERE alias = ?`, alias)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete wrapped key")
	}
	return nil
}

// NewSQLiteWrappedKeyRepository creates a new SQLite wrapped key repository.
func NewSQLiteWrappedKeyRepository(db *sql.DB) *SQLiteWrappedKeyRepository {
	return &SQLiteWrappedKeyRepository{db: db}
}

// isSQLiteUniqueViolation checks if the error is a SQLite unique constraint violation.
func isSQLiteUniqueViolation(err error) bool {
	// SQLite: "UNIQUE constraint failed: vault_keys.alias"
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
