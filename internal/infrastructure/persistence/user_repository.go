package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"python-tutor-bot/internal/domain/curriculum"
	"python-tutor-bot/internal/domain/user"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) user.Repository {
	return &userRepository{db: db}
}

// Save persists a new user to storage
func (r *userRepository) Save(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, lang, level, lesson_cursor, progress, created_at, last_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		int64(u.ID()), string(u.Language()), string(u.Level()),
		u.LessonCursor(), u.Progress(), u.CreatedAt(), u.LastActive())
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// FindByID retrieves a user by ID, or nil if the user does not exist
func (r *userRepository) FindByID(ctx context.Context, id user.ID) (*user.User, error) {
	query := `
		SELECT id, lang, level, lesson_cursor, progress, created_at, last_active
		FROM users WHERE id = ?
	`

	var uid int64
	var lang, level string
	var lessonCursor, progress int
	var createdAt, lastActive time.Time

	err := r.db.QueryRowContext(ctx, query, int64(id)).Scan(
		&uid, &lang, &level, &lessonCursor, &progress, &createdAt, &lastActive)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user.Restore(user.ID(uid), user.Language(lang), curriculum.Level(level),
		lessonCursor, progress, createdAt, lastActive), nil
}

// UpdateLanguage persists a language change
func (r *userRepository) UpdateLanguage(ctx context.Context, id user.ID, language user.Language) error {
	query := `UPDATE users SET lang = ?, last_active = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, string(language), int64(id))
	if err != nil {
		return fmt.Errorf("failed to update language: %w", err)
	}

	return nil
}

// UpdateLevel persists an active-level change
func (r *userRepository) UpdateLevel(ctx context.Context, id user.ID, level curriculum.Level) error {
	query := `UPDATE users SET level = ?, last_active = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, string(level), int64(id))
	if err != nil {
		return fmt.Errorf("failed to update level: %w", err)
	}

	return nil
}

// ApplyQuizSuccess atomically applies one quiz completion. The completion
// record drives the increment: INSERT OR IGNORE fires at most once per
// (user, level, ordinal), so duplicate deliveries and re-taken quizzes are
// no-ops and progress stays monotonic across levels.
func (r *userRepository) ApplyQuizSuccess(ctx context.Context, id user.ID, level curriculum.Level, ordinal int) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO completed_lessons (user_id, level, ordinal)
		VALUES (?, ?, ?)
	`, int64(id), string(level), ordinal)
	if err != nil {
		return false, fmt.Errorf("failed to record completion: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		// Already credited
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users
		SET progress = progress + 1,
		    lesson_cursor = lesson_cursor + 1,
		    last_active = CURRENT_TIMESTAMP
		WHERE id = ?
	`, int64(id))
	if err != nil {
		return false, fmt.Errorf("failed to apply quiz success: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit quiz success: %w", err)
	}

	return true, nil
}

// UpdateLastActive updates the last active time of a user
func (r *userRepository) UpdateLastActive(ctx context.Context, id user.ID) error {
	query := `UPDATE users SET last_active = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, int64(id))
	if err != nil {
		return fmt.Errorf("failed to update last active: %w", err)
	}

	return nil
}

// GetAllUsers retrieves all users from storage
func (r *userRepository) GetAllUsers(ctx context.Context) ([]*user.User, error) {
	query := `
		SELECT id, lang, level, lesson_cursor, progress, created_at, last_active
		FROM users
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		var uid int64
		var lang, level string
		var lessonCursor, progress int
		var createdAt, lastActive time.Time

		if err := rows.Scan(&uid, &lang, &level, &lessonCursor, &progress, &createdAt, &lastActive); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		users = append(users, user.Restore(user.ID(uid), user.Language(lang),
			curriculum.Level(level), lessonCursor, progress, createdAt, lastActive))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
