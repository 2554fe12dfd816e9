package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	categorydomain "github.com/dripstore/catalog/internal/category/domain"
	"github.com/dripstore/catalog/internal/config"
	productdomain "github.com/dripstore/catalog/internal/product/domain"
	userdomain "github.com/dripstore/catalog/internal/user/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "migrations"

// Module applies embedded migrations on startup so the service is usable
// out of the box for local and self-hosted environments.
var Module = fx.Invoke(Run)

func Run(cfg config.Config, gdb *gorm.DB, logger *zap.Logger) error {
	if cfg.DBType != "postgres" {
		// Versioned migrations are postgres-only; other dialects get the
		// schema from the model definitions.
		logger.Info("auto-migrating schema", zap.String("db_type", cfg.DBType))
		return gdb.AutoMigrate(
			&userdomain.User{},
			&categorydomain.Category{},
			&productdomain.Product{},
			&productdomain.ProductImage{},
			&productdomain.ProductOption{},
		)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return RunMigrations(sqlDB)
}

func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}
