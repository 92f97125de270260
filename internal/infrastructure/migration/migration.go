// Package migration applies the embedded goose migrations. The development
// flow may also use gorm AutoMigrate; production runs the SQL scripts.
package migration

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"tonpay/internal/infrastructure/persistence/models"
	"tonpay/internal/shared/logger"
)

//go:embed scripts/*.sql
var scripts embed.FS

func dialectFor(driver string) (string, error) {
	switch driver {
	case "mysql":
		return "mysql", nil
	case "sqlite":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("no migration dialect for driver %s", driver)
	}
}

// Up applies all pending migrations.
func Up(db *gorm.DB, driver string) error {
	dialect, err := dialectFor(driver)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(scripts)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(sqlDB, "scripts"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	logger.Info("migrations applied", "version", version)
	return nil
}

// Down rolls back the most recent migration.
func Down(db *gorm.DB, driver string) error {
	dialect, err := dialectFor(driver)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(scripts)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Down(sqlDB, "scripts"); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// Status prints the migration status.
func Status(db *gorm.DB, driver string) error {
	dialect, err := dialectFor(driver)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	goose.SetBaseFS(scripts)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.Status(sqlDB, "scripts")
}

// AutoMigrate syncs the schema from the gorm models. Development only.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.WalletModel{},
		&models.TransactionModel{},
		&models.InvoiceModel{},
		&models.BillSplitModel{},
		&models.BillParticipantModel{},
		&models.GiftModel{},
		&models.MerchantPaymentModel{},
	)
}
