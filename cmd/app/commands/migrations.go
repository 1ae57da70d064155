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

	"github.com/allisson/authcore/internal/database"
)

// RunMigrations applies every pending migration for the users, sessions and auth_attempts
// tables. The migration directory is picked from the driver's dialect. Returns nil if there
// is nothing to apply.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	dialect, err := database.Dialect(driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	logger.Info("running database migrations",
		slog.String("driver", driver),
		slog.String("dialect", dialect),
	)

	migrationsPath := "file://migrations/" + dialect
	databaseURL := connectionString
	if dialect == database.DialectMySQL && !strings.HasPrefix(databaseURL, "mysql://") {
		databaseURL = "mysql://" + databaseURL
	}

	m, err := migrate.New(migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
