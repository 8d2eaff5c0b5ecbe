package curriculum

import "context"

// Repository defines the contract for curriculum persistence
type Repository interface {
	// SaveBatch persists lessons together with their quizzes, replacing any
	// previously seeded curriculum
	SaveBatch(ctx context.Context, lessons []*Lesson, quizzes map[int]*Quiz) error

	// ListLessons retrieves all lessons of a level ordered by ordinal
	ListLessons(ctx context.Context, level Level) ([]*Lesson, error)

	// GetLesson retrieves a single lesson by level and ordinal
	GetLesson(ctx context.Context, level Level, ordinal int) (*Lesson, error)

	// GetQuiz retrieves the quiz for a lesson, or nil if the lesson has none
	GetQuiz(ctx context.Context, lessonID ID) (*Quiz, error)
}
