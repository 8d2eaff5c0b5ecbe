package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"python-tutor-bot/internal/domain/curriculum"
)

type curriculumRepository struct {
	db *sql.DB
}

// NewCurriculumRepository creates a new curriculum repository
func NewCurriculumRepository(db *sql.DB) curriculum.Repository {
	return &curriculumRepository{db: db}
}

// SaveBatch persists lessons and their quizzes, replacing any previously
// seeded curriculum. quizzes is keyed by index into lessons; lessons without
// an entry have no quiz.
func (r *curriculumRepository) SaveBatch(ctx context.Context, lessons []*curriculum.Lesson, quizzes map[int]*curriculum.Quiz) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM quizzes"); err != nil {
		return fmt.Errorf("failed to clear quizzes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM lessons"); err != nil {
		return fmt.Errorf("failed to clear lessons: %w", err)
	}

	lessonQuery := `
		INSERT INTO lessons (level, ordinal, title_en, title_fr, title_ar, explanation, example)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	quizQuery := `
		INSERT INTO quizzes (lesson_id, question, option_a, option_b, option_c, option_d, correct_option)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	for i, lesson := range lessons {
		titles := lesson.Titles()
		result, err := tx.ExecContext(ctx, lessonQuery,
			string(lesson.Level()), lesson.Ordinal(),
			titles["en"], titles["fr"], titles["ar"],
			lesson.Explanation(), lesson.Example())
		if err != nil {
			return fmt.Errorf("failed to save lesson %s/%d: %w", lesson.Level(), lesson.Ordinal(), err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get lesson ID: %w", err)
		}
		lesson.SetID(curriculum.ID(id))

		quiz, ok := quizzes[i]
		if !ok {
			continue
		}
		options := quiz.Options()
		if _, err := tx.ExecContext(ctx, quizQuery,
			id, quiz.Question(),
			options[0], options[1], options[2], options[3],
			quiz.CorrectOption()); err != nil {
			return fmt.Errorf("failed to save quiz for lesson %s/%d: %w", lesson.Level(), lesson.Ordinal(), err)
		}
		quiz.SetLessonID(curriculum.ID(id))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit curriculum: %w", err)
	}

	return nil
}

// ListLessons retrieves all lessons of a level ordered by ordinal
func (r *curriculumRepository) ListLessons(ctx context.Context, level curriculum.Level) ([]*curriculum.Lesson, error) {
	query := `
		SELECT id, level, ordinal, title_en, title_fr, title_ar, explanation, example
		FROM lessons WHERE level = ? ORDER BY ordinal
	`

	rows, err := r.db.QueryContext(ctx, query, string(level))
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*curriculum.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lessons: %w", err)
	}

	return lessons, nil
}

// GetLesson retrieves a single lesson by level and ordinal, or nil if absent
func (r *curriculumRepository) GetLesson(ctx context.Context, level curriculum.Level, ordinal int) (*curriculum.Lesson, error) {
	query := `
		SELECT id, level, ordinal, title_en, title_fr, title_ar, explanation, example
		FROM lessons WHERE level = ? AND ordinal = ?
	`

	row := r.db.QueryRowContext(ctx, query, string(level), ordinal)
	lesson, err := scanLesson(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return lesson, nil
}

// GetQuiz retrieves the quiz for a lesson, or nil if the lesson has none
func (r *curriculumRepository) GetQuiz(ctx context.Context, lessonID curriculum.ID) (*curriculum.Quiz, error) {
	query := `
		SELECT question, option_a, option_b, option_c, option_d, correct_option
		FROM quizzes WHERE lesson_id = ?
	`

	var question string
	var options [4]string
	var correct int

	err := r.db.QueryRowContext(ctx, query, int64(lessonID)).Scan(
		&question, &options[0], &options[1], &options[2], &options[3], &correct)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find quiz: %w", err)
	}

	return curriculum.NewQuiz(lessonID, question, options, correct), nil
}

// scanner covers both sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLesson(s scanner) (*curriculum.Lesson, error) {
	var id int64
	var level string
	var ordinal int
	var titleEN, titleFR, titleAR, explanation, example string

	err := s.Scan(&id, &level, &ordinal, &titleEN, &titleFR, &titleAR, &explanation, &example)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan lesson: %w", err)
	}

	lesson := curriculum.NewLesson(curriculum.Level(level), ordinal,
		map[string]string{"en": titleEN, "fr": titleFR, "ar": titleAR},
		explanation, example)
	lesson.SetID(curriculum.ID(id))

	return lesson, nil
}
