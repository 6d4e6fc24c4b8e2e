package repository

import (
	"context"
	"database/sql"

	credentialsDomain "github.com/allisson/passvault/internal/credentials/domain"
	"github.com/allisson/passvault/internal/database"
	apperrors "github.com/allisson/passvault/internal/errors"
)

// MySQLCredentialRepository implements credential persistence for MySQL.
// The connection string must set parseTime=true.
type MySQLCredentialRepository struct {
	db *sql.DB
}

// Create inserts a credential and sets its generated ID.
func (m *MySQLCredentialRepository) Create(ctx context.Context, c *credentialsDomain.Credential) error {
	return insertWithLastID(ctx, database.GetTx(ctx, m.db), c)
}

// Update overwrites the labels and sealed password of an existing credential.
func (m *MySQLCredentialRepository) Update(ctx context.Context, c *credentialsDomain.Credential) error {
	return updatePositional(ctx, database.GetTx(ctx, m.db), c)
}

// Get returns the credential with id.
func (m *MySQLCredentialRepository) Get(ctx context.Context, id int64) (*credentialsDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, account_type, username, ciphertext, nonce, created_at, updated_at
			  FROM credentials WHERE id = ?`

	return scanCredential(querier.QueryRowContext(ctx, query, id))
}

// List returns credentials newest first.
func (m *MySQLCredentialRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	return listPositional(ctx, database.GetTx(ctx, m.db), offset, limit)
}

// Delete removes the credential with id.
func (m *MySQLCredentialRepository) Delete(ctx context.Context, id int64) error {
	return deletePositional(ctx, database.GetTx(ctx, m.db), id)
}

// Count returns the number of stored credentials.
func (m *MySQLCredentialRepository) Count(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	var count int64
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM credentials`).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count credentials")
	}
	return count, nil
}

// NewMySQLCredentialRepository creates a new MySQL credential repository.
func NewMySQLCredentialRepository(db *sql.DB) *MySQLCredentialRepository {
	return &MySQLCredentialRepository{db: db}
}

// insertWithLastID inserts c using ? placeholders and reads the id back with LastInsertId.
func insertWithLastID(ctx context.Context, querier database.Querier, c *credentialsDomain.Credential) error {
	query := `INSERT INTO credentials (account_type, username, ciphertext, nonce, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		c.AccountType,
		c.Username,
		c.Ciphertext,
		c.Nonce,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create credential")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read credential id")
	}
	c.ID = id
	return nil
}

func updatePositional(ctx context.Context, querier database.Querier, c *credentialsDomain.Credential) error {
	query := `UPDATE credentials
			  SET account_type = ?,
				  username = ?,
				  ciphertext = ?,
				  nonce = ?,
				  updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		c.AccountType,
		c.Username,
		c.Ciphertext,
		c.Nonce,
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential")
	}
	return requireAffected(result)
}

func listPositional(
	ctx context.Context,
	querier database.Querier,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	query := `SELECT id, account_type, username, ciphertext, nonce, created_at, updated_at
			  FROM credentials ORDER BY id DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list credentials")
	}
	return scanCredentials(rows)
}

func deletePositional(ctx context.Context, querier database.Querier, id int64) error {
	result, err := querier.ExecContext(ctx, `DELETE FROM credentials WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete credential")
	}
	return requireAffected(result)
}
