package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"kindbridge/pkg/types"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies any outstanding schema migrations. A database already
// at the newest version is not an error.
func Migrate(config *types.Config) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	// The pgx/v5 migrate driver registers the pgx5:// scheme.
	databaseURL := config.DatabaseURL
	if strings.HasPrefix(databaseURL, "postgres://") {
		databaseURL = "pgx5://" + strings.TrimPrefix(databaseURL, "postgres://")
	} else if strings.HasPrefix(databaseURL, "postgresql://") {
		databaseURL = "pgx5://" + strings.TrimPrefix(databaseURL, "postgresql://")
	}

	if config.MigrationsTableName != "" {
		sep := "?"
		if strings.Contains(databaseURL, "?") {
			sep = "&"
		}
		databaseURL += sep + "x-migrations-table=" + config.MigrationsTableName
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
