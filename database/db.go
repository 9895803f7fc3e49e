package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Every pooled connection enforces foreign keys and waits on locks instead of
// failing. Transactions start with BEGIN IMMEDIATE so writers queue up front.
const dsnParams = "_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate"

// DB is the connection handle shared by every Repository for the process lifetime
type DB struct {
	*sql.DB
}

func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", dbPath, dsnParams))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", classify(err))
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", classify(err))
	}

	return &DB{db}, nil
}

// Migrate creates the schema if it does not exist yet
func (db *DB) Migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS themes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS poems (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL CHECK (length(title) > 0),
			body TEXT NOT NULL CHECK (length(body) > 0),
			user_id TEXT NOT NULL,
			category_id TEXT,
			theme_id TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE SET NULL,
			FOREIGN KEY (theme_id) REFERENCES themes(id) ON DELETE SET NULL
		)`,

		`CREATE TABLE IF NOT EXISTS comments (
			id TEXT PRIMARY KEY,
			poem_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			body TEXT NOT NULL CHECK (length(body) > 0),
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			FOREIGN KEY (poem_id) REFERENCES poems(id) ON DELETE CASCADE,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		// The pair is the key: a user likes a poem at most once
		`CREATE TABLE IF NOT EXISTS likes (
			poem_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			PRIMARY KEY (poem_id, user_id),
			FOREIGN KEY (poem_id) REFERENCES poems(id) ON DELETE CASCADE,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_poems_user ON poems(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_poems_category ON poems(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_poems_theme ON poems(theme_id)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_poem ON comments(poem_id)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_user ON comments(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_likes_user ON likes(user_id)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("migration failed: %w", classify(err))
		}
	}

	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
