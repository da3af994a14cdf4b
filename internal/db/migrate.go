package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/Skotchmaster/phast_auth/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// RunGoose runs a goose command ("up", "down", "status", "version", ...)
// against the embedded postgres migrations.
func RunGoose(ctx context.Context, sqlDB *sql.DB, command string, args ...string) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, sqlDB, migrationsDir, args...); err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}

// MigrateSQL applies every pending embedded migration.
func MigrateSQL(ctx context.Context, sqlDB *sql.DB) error {
	return RunGoose(ctx, sqlDB, "up")
}

// Migrate brings the schema up to date: goose for postgres, gorm's
// AutoMigrate for sqlite.
func Migrate(ctx context.Context, db *gorm.DB, driver string) error {
	if driver == DriverSQLite {
		if err := db.WithContext(ctx).AutoMigrate(&models.User{}); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	return MigrateSQL(ctx, sqlDB)
}
