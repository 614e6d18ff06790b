package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/IkingariSolorzano/gymcredit-be/migrations"
)

// RunMigrations applies the registered Go seed migrations, then makes sure
// the default gym exists once a partner account does.
func RunMigrations(db *gorm.DB, cfg *Config, log logrus.FieldLogger) error {
	sqlDB, err := GetSQLDB(db)
	if err != nil {
		return err
	}

	migrations.Configure(migrations.Settings{
		OwnerMobile:   cfg.OwnerMobile,
		OwnerPassword: cfg.OwnerPassword,
		BcryptCost:    cfg.BcryptCost,
	})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	goose.SetBaseFS(migrations.FS)
	if err := goose.Up(sqlDB, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := migrations.EnsureDefaultGym(context.Background(), sqlDB); err != nil {
		return fmt.Errorf("failed to seed default gym: %w", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}

// GetSQLDB returns the *sql.DB behind a gorm.DB.
func GetSQLDB(db *gorm.DB) (*sql.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB, nil
}
