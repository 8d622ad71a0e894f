package database

import (
	"fmt"
	"log"

	"github.com/cardtrack-dev/cardtrack/internal/config"
	"github.com/cardtrack-dev/cardtrack/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")
	return nil
}

func Migrate() error {
	log.Println("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Card{},
		&models.Comment{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// A partial unique index keyed on status = 'Ongoing' is what actually
	// enforces the single-Ongoing-card invariant under concurrent writes.
	// Supported by both postgres and sqlite.
	err = DB.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_cards_single_ongoing ON cards (status) WHERE status = 'Ongoing'`,
	).Error
	if err != nil {
		return fmt.Errorf("failed to create ongoing index: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
