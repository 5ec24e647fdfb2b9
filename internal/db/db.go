package db

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/welcomedesk/visitors/internal/models"
)

const dsnParams = "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

// Open connects to the sqlite file at path and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(path+dsnParams), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// SQLite works best with a single writer; cap the pool accordingly.
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate creates the visitors and church_settings tables.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.Visitor{},
		&models.ChurchSettings{},
	); err != nil {
		return err
	}
	// Listing is always newest first.
	return conn.Exec("CREATE INDEX IF NOT EXISTS idx_visitors_recent ON visitors(submission_date DESC, id DESC)").Error
}

// Close releases the underlying connection pool.
func Close(conn *gorm.DB) error {
	if conn == nil {
		return nil
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
