package repository

import (
	"context"
	"database/sql"

	credentialsDomain "github.com/allisson/passvault/internal/credentials/domain"
	"github.com/allisson/passvault/internal/database"
	apperrors "github.com/allisson/passvault/internal/errors"
)

// SQLiteCredentialRepository implements credential persistence for SQLite.
// SQLite shares the MySQL placeholder syntax, so the positional helpers are reused.
type SQLiteCredentialRepository struct {
	db *sql.DB
}

// Create inserts a credential and sets its generated ID.
func (s *SQLiteCredentialRepository) Create(ctx context.Context, c *credentialsDomain.Credential) error {
	return insertWithLastID(ctx, database.GetTx(ctx, s.db), c)
}

// Update overwrites the labels and sealed password of an existing credential.
func (s *SQLiteCredentialRepository) Update(ctx context.Context, c *credentialsDomain.Credential) error {
	return updatePositional(ctx, database.GetTx(ctx, s.db), c)
}

// Get returns the credential with id.
func (s *SQLiteCredentialRepository) Get(ctx context.Context, id int64) (*credentialsDomain.Credential, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, account_type, username, ciphertext, nonce, created_at, updated_at
			  FROM credentials WHERE id = ?`

	return scanCredential(querier.QueryRowContext(ctx, query, id))
}

// List returns credentials newest first.
func (s *SQLiteCredentialRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*credentialsDomain.Credential, error) {
	return listPositional(ctx, database.GetTx(ctx, s.db), offset, limit)
}

// Delete removes the credential with id.
func (s *SQLiteCredentialRepository) Delete(ctx context.Context, id int64) error {
	return deletePositional(ctx, database.GetTx(ctx, s.db), id)
}

// Count returns the number of stored credentials.
func (s *SQLiteCredentialRepository) Count(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, s.db)

	var count int64
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM credentials`).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count credentials")
	}
	return count, nil
}

// NewSQLiteCredentialRepository creates a new SQLite credential repository.
func NewSQLiteCredentialRepository(db *sql.DB) *SQLiteCredentialRepository {
	return &SQLiteCredentialRepository{db: db}
}
