// Package repository implements credential persistence for PostgreSQL, MySQL and SQLite.
//
// Repositories store the sealed password as two raw byte columns (ciphertext and
// nonce) and return them byte for byte. They never see plaintext. All methods are
// transaction aware via database.GetTx().
package repository

import (
	"context"
	"database/sql"
	"errors"

	credentialsDomain "github.com/allisson/passvault/internal/credentials/domain"
	"github.com/allisson/passvault/internal/database"
	apperrors "github.com/allisson/passvault/internal/errors"
)

// PostgreSQLCredentialRepository implements credential persistence for PostgreSQL.
type PostgreSQLCredentialRepository struct {
	db *sql.DB
}

// Create inserts a credential and sets its generated ID.
func (p *PostgreSQLCredentialRepository) Create(ctx context.Context, c *credentialsDomain.Credential) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO credentials (account_type, username, ciphertext, nonce, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	err := querier.QueryRowContext(
		ctx,
		query,
		c.AccountType,
		c.Username,
		c.Ciphertext,
		c.Nonce,
		c.CreatedAt,
		c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create credential")
	}
	return nil
}

// Update overwrites the labels and sealed password of an existing credential.
func (p *PostgreSQLCredentialRepository) Update(ctx context.Context, c *credentialsDomain.Credential) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE credentials
			  SET account_type = $1,
				  username = $2,
				  ciphertext = $3,
				  nonce = $4,
				  updated_at = $5
			  WHERE id = $6`

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

// Get returns the credential with id.
func (p *PostgreSQLCredentialRepository) Get(ctx context.Context, id int64) (*credentialsDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, account_type, username, ciphertext, nonce, created_at, updated_at
			  FROM credentials WHERE id = $1`

	return scanCredential(querier.QueryRowContext(ctx, query, id))
}

// List returns credentials newest first.
func (p *PostgreSQLCredentialRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, account_type, username, ciphertext, nonce, created_at, updated_at
			  FROM credentials ORDER BY id DESC LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list credentials")
	}
	return scanCredentials(rows)
}

// Delete removes the credential with id.
func (p *PostgreSQLCredentialRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM credentials WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete credential")
	}
	return requireAffected(result)
}

// Count returns the number of stored credentials.
func (p *PostgreSQLCredentialRepository) Count(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM credentials`).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count credentials")
	}
	return count, nil
}

// NewPostgreSQLCredentialRepository creates a new PostgreSQL credential repository.
func NewPostgreSQLCredentialRepository(db *sql.DB) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{db: db}
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCredential(row scanner) (*credentialsDomain.Credential, error) {
	var c credentialsDomain.Credential
	err := row.Scan(
		&c.ID,
		&c.AccountType,
		&c.Username,
		&c.Ciphertext,
		&c.Nonce,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, credentialsDomain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential")
	}
	return &c, nil
}

func scanCredentials(rows *sql.Rows) ([]*credentialsDomain.Credential, error) {
	defer func() {
		_ = rows.Close()
	}()

	credentials := make([]*credentialsDomain.Credential, 0)
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		credentials = append(credentials, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate credentials")
	}
	return credentials, nil
}

// requireAffected reports ErrCredentialNotFound when a write matched no row.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return credentialsDomain.ErrCredentialNotFound
	}
	return nil
}
