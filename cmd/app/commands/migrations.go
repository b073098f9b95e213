package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// migrationsPath returns the migration source URL for driver.
func migrationsPath(driver string) (string, error) {
	switch driver {
	case "postgres":
		return "file://migrations/postgresql", nil
	case "mysql":
		return "file://migrations/mysql", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// migrationDatabaseURL adds the mysql:// scheme golang-migrate needs to a go-sql-driver DSN.
func migrationDatabaseURL(driver, connectionString string) string {
	if driver == "mysql" && !strings.HasPrefix(connectionString, "mysql://") {
		return "mysql://" + connectionString
	}
	return connectionString
}

// RunMigrations applies every pending migration for driver. Having nothing to apply is not an error.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	logger.Info("running database migrations", slog.String("driver", driver))

	source, err := migrationsPath(driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	m, err := migrate.New(source, migrationDatabaseURL(driver, connectionString))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	logger.Info("migrations completed successfully",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
	return nil
}
