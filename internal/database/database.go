package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"stock-order-service/internal/models"
)

// Connect opens the run-history database. Log verbosity follows the
// environment: errors only in production, full SQL elsewhere.
func Connect(databaseURL, environment string) (*gorm.DB, error) {
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Error
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the run-history tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ImportRun{},
		&models.ImportRunError{},
	)
}
