package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// ConnectToSQLite initializes and returns a SQLite connection
func ConnectToSQLite(dbPath string) (*sql.DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for SQLite: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	log.Println("Connected to SQLite database")
	return db, nil
}

// InitializeSchema creates all the necessary tables if they don't exist.
// Set-valued document fields (visited regions, badges, likes, connection
// edges) are stored as membership tables so that INSERT OR IGNORE gives the
// same idempotent union semantics as a document-store array union.
func InitializeSchema(db *sql.DB) error {
	// Create users table
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		display_name TEXT NOT NULL,
		bio TEXT,
		tags TEXT,
		avatar_ref TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		last_seen_at TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	// Create user_links table for requests/connections/blocked edges
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS user_links (
		user_id TEXT NOT NULL,
		other_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		PRIMARY KEY (user_id, other_id, kind),
		FOREIGN KEY (user_id) REFERENCES users(id)
	)`)
	if err != nil {
		return fmt.Errorf("failed to create user_links table: %w", err)
	}

	// Create travel_regions table
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS travel_regions (
		user_id TEXT NOT NULL,
		region TEXT NOT NULL,
		PRIMARY KEY (user_id, region)
	)`)
	if err != nil {
		return fmt.Errorf("failed to create travel_regions table: %w", err)
	}

	// Create travel_badges table
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS travel_badges (
		user_id TEXT NOT NULL,
		badge TEXT NOT NULL,
		PRIMARY KEY (user_id, badge)
	)`)
	if err != nil {
		return fmt.Errorf("failed to create travel_badges table: %w", err)
	}

	// Create posts table
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		region TEXT NOT NULL,
		author_id TEXT NOT NULL,
		author_name TEXT NOT NULL,
		author_avatar TEXT,
		caption TEXT,
		photo_ref TEXT,
		created_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create posts table: %w", err)
	}

	// Create post_likes table
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS post_likes (
		post_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		PRIMARY KEY (post_id, user_id),
		FOREIGN KEY (post_id) REFERENCES posts(id)
	)`)
	if err != nil {
		return fmt.Errorf("failed to create post_likes table: %w", err)
	}

	// Create comments table
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS comments (
		id TEXT PRIMARY KEY,
		post_id TEXT NOT NULL,
		author_id TEXT NOT NULL,
		author_name TEXT NOT NULL,
		text TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		FOREIGN KEY (post_id) REFERENCES posts(id)
	)`)
	if err != nil {
		return fmt.Errorf("failed to create comments table: %w", err)
	}

	// Create rooms table
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS rooms (
		id TEXT PRIMARY KEY,
		participant_a TEXT NOT NULL,
		participant_b TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		last_message_at TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("failed to create rooms table: %w", err)
	}

	// Create messages table
	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		room_id TEXT NOT NULL,
		author_id TEXT NOT NULL,
		author_name TEXT NOT NULL,
		text TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		FOREIGN KEY (room_id) REFERENCES rooms(id)
	)`)
	if err != nil {
		return fmt.Errorf("failed to create messages table: %w", err)
	}

	log.Println("Database schema initialized successfully")
	return nil
}
