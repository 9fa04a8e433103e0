package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the nutrition table with its base columns so lookups work
// before the first dataset load. ReplaceAll rebuilds the table to match the
// loaded file, so this schema is only a starting shape. Idempotent.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS nutrition (
		name TEXT NOT NULL,
		calories REAL NOT NULL,
		proteins REAL NOT NULL,
		fat REAL NOT NULL,
		carbohydrate REAL NOT NULL,
		description TEXT NOT NULL
	);`)
	return err
}
