package commands

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/passvault/internal/database"
)

// RunMigrations applies the embedded migrations for driver and prints the schema version.
func RunMigrations(db *sql.DB, driver string, logger *slog.Logger, writer io.Writer) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	if err := database.Migrate(db, driver); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := database.MigrationVersion(db, driver)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	logger.Info("migrations completed successfully",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
	_, _ = fmt.Fprintf(writer, "Database schema at version %d\n", version)
	return nil
}
