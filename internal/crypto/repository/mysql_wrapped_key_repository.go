package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	"github.com/allisson/passvault/internal/database"
	apperrors "github.com/allisson/passvault/internal/errors"
)

// MySQLWrappedKeyRepository implements wrapped key persistence for MySQL.
// Key ids are stored as BINARY(16).
type MySQLWrappedKeyRepository struct {
	db *sql.DB
}

// Create inserts a wrapped key. A duplicate alias fails with ErrConflict.
func (m *MySQLWrappedKeyRepository) Create(ctx context.Context, key *cryptoDomain.WrappedKey) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO vault_keys (id, alias, algorithm, policy, wrapped_key, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	id, err := key.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal wrapped key id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		key.Alias,
		key.Algorithm,
		key.Policy,
		key.WrappedKey,
		key.CreatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "wrapped key alias already exists")
		}
		return apperrors.Wrap(err, "failed to create wrapped key")
	}
	return nil
}

// GetByAlias returns the wrapped key stored under alias.
func (m *MySQLWrappedKeyRepository) GetByAlias(
	ctx context.Context,
	alias string,
) (*cryptoDomain.WrappedKey, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, alias, algorithm, policy, wrapped_key, created_at
			  FROM vault_keys WHERE alias = ?`

	var key cryptoDomain.WrappedKey
	var id []byte
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

	if err := key.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal wrapped key id")
	}
	return &key, nil
}

// DeleteByAlias removes the wrapped key stored under alias.
func (m *MySQLWrappedKeyRepository) DeleteByAlias(ctx context.Context, alias string) error {
	querier := database.GetTx(ctx, m.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM vault_keys WHERE alias = ?`, alias)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete wrapped key")
	}
	return nil
}

// NewMySQLWrappedKeyRepository creates a new MySQL wrapped key repository.
func NewMySQLWrappedKeyRepository(db *sql.DB) *MySQLWrappedKeyRepository {
	return &MySQLWrappedKeyRepository{db: db}
}

// isMySQLUniqueViolation checks if the error is a MySQL duplicate entry error (number 1062).
func isMySQLUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
