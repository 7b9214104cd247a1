package database

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/profilsaya/backend/internal/models"
	"github.com/pageza/profilsaya/backend/migrations"
)

// Models lists every table the application owns.
func Models() []any {
	return []any{
		&models.User{},
		&models.Profile{},
		&models.Link{},
		&models.Theme{},
	}
}

// RunMigrations brings the schema up to date. PostgreSQL runs the embedded
// goose migrations; the other dialects use GORM auto-migration.
func RunMigrations(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	if db.Dialector.Name() != "postgres" {
		log.Info("using GORM auto-migration", zap.String("dialect", db.Dialector.Name()))
		if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	log.Info("migrations applied", zap.Int64("version", version))
	return nil
}
