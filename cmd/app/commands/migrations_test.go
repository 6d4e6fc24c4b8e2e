package commands

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/allisson/passvault/internal/database"
)

func TestRunMigrations(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "passvault.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var out bytes.Buffer
	require.NoError(t, RunMigrations(db, database.DriverSQLite, discardLogger(), &out))
	assert.Contains(t, out.String(), "Database schema at version")

	// Running again is a no-op.
	out.Reset()
	require.NoError(t, RunMigrations(db, database.DriverSQLite, discardLogger(), &out))
	assert.Contains(t, out.String(), "Database schema at version")
}
