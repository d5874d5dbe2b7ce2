package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. The driver is selected
// with DB_TYPE ("sqlite" or "postgres", default sqlite); postgres reads its
// DSN from DATABASE_URL.
func Connect() error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	if dbType == "postgres" {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}
		DB = db
		return InitSchema()
	}

	// Create data directory if it doesn't exist
	dataDir := "data"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "espabot.db")
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db

	return InitSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// InitSchema creates necessary tables if they don't exist
func InitSchema() error {
	// Create words table
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			spanish TEXT NOT NULL,
			english TEXT NOT NULL,
			notes TEXT DEFAULT '',
			category TEXT DEFAULT '',
			synonyms_spanish TEXT DEFAULT '[]',
			synonyms_english TEXT DEFAULT '[]',
			leitner_box INTEGER DEFAULT 0,
			last_reviewed TIMESTAMP,
			due_date TIMESTAMP,
			exposure_level TEXT DEFAULT 'new',
			times_studied INTEGER DEFAULT 0,
			times_correct INTEGER DEFAULT 0,
			last_studied TIMESTAMP,
			game_performance TEXT DEFAULT '{}',
			frequency_rank INTEGER DEFAULT 99999,
			source TEXT DEFAULT 'user_added',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create words table: %v", err)
	}

	_, err = DB.Exec(`CREATE INDEX IF NOT EXISTS idx_words_due_date ON words(due_date)`)
	if err != nil {
		return fmt.Errorf("failed to create due date index: %v", err)
	}

	// Create incomplete_words table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS incomplete_words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			spanish TEXT NOT NULL,
			source_text TEXT DEFAULT '',
			source_date TEXT DEFAULT '',
			category TEXT DEFAULT '',
			status TEXT DEFAULT 'needs_translation',
			extracted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create incomplete_words table: %v", err)
	}

	// Create hard_words table
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS hard_words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			spanish TEXT NOT NULL,
			english TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(spanish, english)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create hard_words table: %v", err)
	}

	// Create meta table for the local word-list version
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create meta table: %v", err)
	}

	return nil
}
