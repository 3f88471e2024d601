package infra

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the single SQLite file every command operates on.
//
// Schema is managed exclusively by the migration runner (internal/migration),
// never by GORM AutoMigrate: the historical DB predates the Go models and
// AutoMigrate's idea of the schema drifts from the real one (check
// constraints, renamed columns, backfilled defaults).
//
// Execution model is single-writer: each command opens one connection, runs
// its transactions and exits. _busy_timeout covers the accidental overlap of
// two commands; running them concurrently on purpose is unsupported.
func NewDatabase(path string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir base de datos %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// One writer at a time — SQLite serializes writes anyway, and the whole
	// point of the exclusive connection is that migrations never interleave.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// NewTestDatabase opens a private in-memory database for tests. Each call
// returns an isolated instance; foreign keys stay enforced so tests exercise
// the same constraints as the file-backed DB.
func NewTestDatabase() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	// A second pooled connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
