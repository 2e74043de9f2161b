package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mantonx/paradiso/internal/config"
	"github.com/mantonx/paradiso/internal/logger"
)

var DB *gorm.DB

// Initialize sets up the database connection based on the configured backend.
// Failure here is fatal: the service cannot start without storage.
func Initialize() {
	var err error

	cfg := config.Get()

	switch cfg.Database.Type {
	case "postgres":
		DB, err = connectPostgres(cfg)
	case "sqlite":
		DB, err = connectSQLite(cfg)
	default:
		log.Fatalf("Unsupported database type: %s", cfg.Database.Type)
	}

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	logger.Info("Database initialized with %s", cfg.Database.Type)
}

func connectPostgres(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		cfg.Database.Host, cfg.Database.Username, cfg.Database.Password,
		cfg.Database.Database, cfg.Database.Port)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
}

func connectSQLite(cfg *config.Config) (*gorm.DB, error) {
	// Foreign keys must be on for the cascade deletes to work at all
	dsn := cfg.Database.SQLitePath + "?_foreign_keys=on"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB overrides the database instance (used by tests)
func SetDB(db *gorm.DB) {
	DB = db
}

// PurgeOrphans removes vote and viewed rows whose film or profile no longer
// exists. Rows like this predate foreign-key enforcement; once the schema
// carries real constraints the purge finds nothing.
func PurgeOrphans(db *gorm.DB) error {
	if err := db.Exec(`DELETE FROM votes
		WHERE profile_id NOT IN (SELECT id FROM profiles)
		OR film_id NOT IN (SELECT id FROM films)`).Error; err != nil {
		return fmt.Errorf("failed to purge orphaned votes: %w", err)
	}

	if err := db.Exec(`DELETE FROM viewed
		WHERE profile_id NOT IN (SELECT id FROM profiles)
		OR film_id NOT IN (SELECT id FROM films)`).Error; err != nil {
		return fmt.Errorf("failed to purge orphaned viewed rows: %w", err)
	}

	return nil
}
