package database

import (
	"fmt"
	"strings"
	"time"

	"trending-api/internal/config"
	"trending-api/internal/logging"
	"trending-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open opens the SQLite database at path and runs migrations.
// Using glebarez/sqlite which is a pure Go implementation (no CGO required)
func Open(path string, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
		// Timestamps are compared as text by SQLite, so they must share a zone.
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// InitDB initializes the shared database connection from config.
func InitDB(cfg config.DatabaseConfig) error {
	db, err := Open(cfg.Path, ParseLogLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	DB = db
	logging.Info().Str("path", cfg.Path).Msg("database connected and migrated")
	return nil
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}

// Close closes the shared connection, if open.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ParseLogLevel maps a level name to the gorm logger level. Unknown names map to warn.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent", "off":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
