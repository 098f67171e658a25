// Package migrate applies the outreach schema migrations.
package migrate

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // file source for migrations
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

var ErrDirty = errors.New("database is in dirty state")

type Config struct {
	DatabaseURL    string
	MigrationsPath string
}

type Runner struct {
	config *Config
	logger *zap.Logger
}

func NewRunner(config *Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		config: config,
		logger: logger,
	}
}

// withMigrate opens a dedicated connection for fn. The migrate driver closes
// the pool it is given, so it never shares the application's.
func (r *Runner) withMigrate(fn func(m *migrate.Migrate) error) error {
	db, err := sql.Open("postgres", r.config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", r.config.MigrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			r.logger.Warn("Failed to close migrate instance",
				zap.NamedError("sourceError", srcErr),
				zap.NamedError("databaseError", dbErr))
		}
	}()

	return fn(m)
}

// Up applies every pending migration.
func (r *Runner) Up() error {
	return r.withMigrate(func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return r.logVersion(m)
	})
}

// Steps migrates n steps up, or down when n is negative.
func (r *Runner) Steps(n int) error {
	return r.withMigrate(func(m *migrate.Migrate) error {
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to migrate %d steps: %w", n, err)
		}
		return r.logVersion(m)
	})
}

// Rollback reverts the last migration.
func (r *Runner) Rollback() error {
	return r.Steps(-1)
}

// Version returns the current schema version. Zero means no migration has
// been applied.
func (r *Runner) Version() (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)
	err := r.withMigrate(func(m *migrate.Migrate) error {
		var err error
		version, dirty, err = m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		return nil
	})
	return version, dirty, err
}

func (r *Runner) logVersion(m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		r.logger.Info("Database has no migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get version: %w", err)
	}
	if dirty {
		return fmt.Errorf("%w at version %d", ErrDirty, version)
	}

	r.logger.Info("Database schema migrated", zap.Uint("version", version))
	return nil
}
