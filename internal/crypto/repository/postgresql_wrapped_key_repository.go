// Package repository persists KMS-wrapped encryption keys.
//
// The KMS-backed secure store keeps key material encrypted by an external KMS in
// the vault_keys table. One implementation exists per supported database:
//   - PostgreSQL: native UUID and BYTEA columns
//   - MySQL: BINARY(16) ids and BLOB columns
//   - SQLite: TEXT ids and BLOB columns
//
// All repositories are transaction aware via database.GetTx(). They report a
// missing alias with apperrors.ErrNotFound and a duplicate alias with
// apperrors.ErrConflict.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	"github.com/allisson/passvault/internal/database"
	apperrors "github.com/allisson/passvault/internal/errors"
)

// PostgreSQLWrappedKeyRepository implements wrapped key persistence for PostgreSQL.
type PostgreSQLWrappedKeyRepository struct {
	db *sql.DB
}

// Create inserts a wrapped key. The alias column is unique, so a second key
// under the same alias fails with ErrConflict.
func (p *PostgreSQLWrappedKeyRepository) Create(ctx context.Context, key *cryptoDomain.WrappedKey) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO vault_keys (id, alias, algorithm, policy, wrapped_key, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		key.ID,
		key.Alias,
		key.Algorithm,
		key.Policy,
		key.WrappedKey,
		key.CreatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "wrapped key alias already exists")
		}
		return apperrors.Wrap(err, "failed to create wrapped key")
	}
	return nil
}

// GetByAlias returns the wrapped key stored under alias.
func (p *PostgreSQLWrappedKeyRepository) GetByAlias(
	ctx context.Context,
	alias string,
) (*cryptoDomain.WrappedKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, alias, algorithm, policy, wrapped_key, created_at
			  FROM vault_keys WHERE alias = $1`

	var key cryptoDomain.WrappedKey
	err := querier.QueryRowContext(ctx, query, alias).Scan(
		&key.ID,
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
	return &key, nil
}

// DeleteByAlias removes the wrapped key stored under alias. A missing alias is not an error.
func (p *PostgreSQLWrappedKeyRepository) DeleteByAlias(ctx context.Context, alias string) error {
	querier := database.GetTx(ctx, p.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM vault_keys WHERE alias = $1`, alias)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete wrapped key")
	}
	return nil
}

// NewPostgreSQLWrappedKeyRepository creates a new PostgreSQL wrapped key repository.
func NewPostgreSQLWrappedKeyRepository(db *sql.DB) *PostgreSQLWrappedKeyRepository {
	return &PostgreSQLWrappedKeyRepository{db: db}
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" (SQLSTATE 23505)
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "23505")
}
