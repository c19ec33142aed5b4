package db

import (
	"fmt"
	"time"

	"github.com/enzococca/pyarchinit-webapp/src/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the PyArchInit PostgreSQL database.
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		log.Error().Err(err).Msg("error connecting to the database")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info().Msg("PyArchInit DB connected successfully")
	return db, nil
}

// Migrate creates the tables owned by this service. The archaeological
// tables belong to PyArchInit and are never migrated here.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.UserModel{}); err != nil {
		return fmt.Errorf("migrating users: %w", err)
	}
	return nil
}
