package persistence

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteDB creates a new SQLite database connection
func NewSQLiteDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	// Users table. The id is the stable identifier supplied by the
	// transport layer; profile defaults match first-contact state.
	usersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		lang TEXT NOT NULL DEFAULT 'en',
		level TEXT NOT NULL DEFAULT 'beginner',
		lesson_cursor INTEGER NOT NULL DEFAULT 1,
		progress INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_active DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := db.Exec(usersTable)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	// Lessons table, reseeded from curriculum.json on every startup
	lessonsTable := `
	CREATE TABLE IF NOT EXISTS lessons (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		level TEXT NOT NULL,
		ordinal INTEGER NOT NULL,
		title_en TEXT NOT NULL,
		title_fr TEXT NOT NULL,
		title_ar TEXT NOT NULL,
		explanation TEXT NOT NULL,
		example TEXT NOT NULL,
		UNIQUE(level, ordinal)
	);`

	_, err = db.Exec(lessonsTable)
	if err != nil {
		return fmt.Errorf("failed to create lessons table: %w", err)
	}

	// Per-lesson completion records, the idempotence guard for progress
	// increments. Keyed by (level, ordinal) rather than lesson id because
	// the lessons table is reseeded on startup and ids do not survive it.
	completedTable := `
	CREATE TABLE IF NOT EXISTS completed_lessons (
		user_id INTEGER NOT NULL,
		level TEXT NOT NULL,
		ordinal INTEGER NOT NULL,
		completed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, level, ordinal)
	);`

	_, err = db.Exec(completedTable)
	if err != nil {
		return fmt.Errorf("failed to create completed_lessons table: %w", err)
	}

	// Quizzes table, one quiz per lesson at most
	quizzesTable := `
	CREATE TABLE IF NOT EXISTS quizzes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		lesson_id INTEGER NOT NULL,
		question TEXT NOT NULL,
		option_a TEXT NOT NULL,
		option_b TEXT NOT NULL,
		option_c TEXT NOT NULL,
		option_d TEXT NOT NULL,
		correct_option INTEGER NOT NULL,
		FOREIGN KEY (lesson_id) REFERENCES lessons (id),
		UNIQUE(lesson_id)
	);`

	_, err = db.Exec(quizzesTable)
	if err != nil {
		return fmt.Errorf("failed to create quizzes table: %w", err)
	}

	return nil
}
