package db

import (
	"fmt"
	"os"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the sqlite3 driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vancelodge/lodge-billing/internal/models"
)

// ConnectAndMigrate opens the SQLite store at path and provisions the schema.
// It is safe to call on every start: table creation and the sequence seed use
// create-if-absent semantics. Any provisioning error is returned as-is and
// should be treated as fatal by the caller.
func ConnectAndMigrate(path string, sqlMigrations bool) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is empty")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	// DSN parameters reach every pooled connection, unlike PRAGMA statements
	// which only touch the connection they run on. WAL keeps concurrent
	// writers queued rather than failing fast; the busy timeout covers writer
	// hand-off between transactions.
	dsn := path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	if sqlMigrations {
		if err := runSQLMigrations(path); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		modelsToMigrate := []interface{}{
			&models.Client{}, &models.Quote{}, &models.DeletedClient{}, &models.DeletedQuote{}, &models.QuoteSequence{},
		}
		for _, m := range modelsToMigrate {
			if migErr := gdb.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"clients", "quotes", "deleted_clients", "deleted_quotes", "quote_number_sequence"} {
		if !gdb.Migrator().HasTable(table) {
			return nil, fmt.Errorf("missing table after migration: %s", table)
		}
	}

	if err := seedSequence(gdb); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return gdb, nil
}

// seedSequence inserts the counter row only when the table is empty. An
// existing counter is never rewritten, whatever its value.
func seedSequence(gdb *gorm.DB) error {
	return gdb.Exec(
		"INSERT INTO quote_number_sequence (last_number) SELECT ? WHERE NOT EXISTS (SELECT 1 FROM quote_number_sequence)",
		models.SequenceSeed,
	).Error
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(path string) error {
	m, err := migrate.New("file://migrations", "sqlite3://"+path)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
