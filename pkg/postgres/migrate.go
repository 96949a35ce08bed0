package postgres

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// RunMigrations applies pending migrations from source (e.g.
// "file://migrations") and logs the resulting schema version.
func RunMigrations(dsn, source string, logger *slog.Logger) error {
	m, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations up: %w", err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		logger.Info("database has no migrations applied", "source", source)
	case err != nil:
		return fmt.Errorf("postgres: read migration version: %w", err)
	case dirty:
		return fmt.Errorf("postgres: schema version %d is dirty", version)
	default:
		logger.Info("database schema up to date", "version", version)
	}
	return nil
}
