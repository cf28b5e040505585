package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
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

	// One ingestion process writes at a time; keep the pool small and let
	// readers wait out short write locks instead of failing.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely. A failure here means
// the store is unusable and aborts the run.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS diary_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			day INTEGER NOT NULL,
			content TEXT NOT NULL,
			file_source TEXT NOT NULL,
			entry_type TEXT NOT NULL,
			word_count INTEGER NOT NULL,
			summary TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (date, entry_type)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_year ON diary_entries(year);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_type ON diary_entries(entry_type);`,
		// Full-text shadow of diary_entries. rowid mirrors diary_entries.id,
		// giving exactly one shadow row per structured row. Both tables are
		// only ever written together inside one transaction.
		`CREATE VIRTUAL TABLE IF NOT EXISTS diary_fts USING fts5(
			date UNINDEXED,
			content,
			file_source UNINDEXED
		);`,
		`CREATE TABLE IF NOT EXISTS diary_stats (
			year INTEGER PRIMARY KEY,
			total_entries INTEGER NOT NULL,
			total_words INTEGER NOT NULL,
			first_entry_date TEXT,
			last_entry_date TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
