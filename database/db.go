package database

import (
	"fmt"

	"cryptomaster/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the SQLite file at path and migrates the preference tables.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	// sqlite allows a single writer; ":memory:" databases are per connection
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Preference{}, &models.Settings{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	log.Info().Str("component", "database").Str("path", path).Msg("Database connected successfully")
	return db, nil
}
