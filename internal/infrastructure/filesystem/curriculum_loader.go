package filesystem

import (
	"encoding/json"
	"fmt"
	"os"

	"python-tutor-bot/internal/domain/curriculum"
)

// CurriculumLoader handles loading the curriculum from files
type CurriculumLoader struct{}

// NewCurriculumLoader creates a new curriculum loader
func NewCurriculumLoader() *CurriculumLoader {
	return &CurriculumLoader{}
}

// CurriculumData represents the JSON structure of the curriculum file
type CurriculumData struct {
	Lessons []LessonEntry `json:"lessons"`
}

// LessonEntry represents a single lesson in JSON
type LessonEntry struct {
	Level       string            `json:"level"`
	Ordinal     int               `json:"ordinal"`
	Title       map[string]string `json:"title"`
	Explanation string            `json:"explanation"`
	Example     string            `json:"example"`
	Quiz        *QuizEntry        `json:"quiz,omitempty"`
}

// QuizEntry represents a lesson's quiz in JSON
type QuizEntry struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
}

// LoadFromFile loads the curriculum from a JSON file. It returns the lessons
// in file order and the quizzes keyed by index into the lesson slice.
func (cl *CurriculumLoader) LoadFromFile(filename string) ([]*curriculum.Lesson, map[int]*curriculum.Quiz, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open curriculum file: %w", err)
	}
	defer file.Close()

	var data CurriculumData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, nil, fmt.Errorf("failed to decode curriculum JSON: %w", err)
	}

	var lessons []*curriculum.Lesson
	quizzes := make(map[int]*curriculum.Quiz)

	for i, entry := range data.Lessons {
		if !curriculum.IsValidLevel(entry.Level) {
			return nil, nil, fmt.Errorf("invalid level: %s", entry.Level)
		}
		if entry.Ordinal < 1 {
			return nil, nil, fmt.Errorf("invalid ordinal %d for level %s", entry.Ordinal, entry.Level)
		}
		if entry.Title["en"] == "" {
			return nil, nil, fmt.Errorf("missing english title for %s/%d", entry.Level, entry.Ordinal)
		}

		lesson := curriculum.NewLesson(
			curriculum.Level(entry.Level),
			entry.Ordinal,
			entry.Title,
			entry.Explanation,
			entry.Example,
		)
		lessons = append(lessons, lesson)

		if entry.Quiz == nil {
			continue
		}
		if len(entry.Quiz.Options) != 4 {
			return nil, nil, fmt.Errorf("quiz for %s/%d must have 4 options, got %d",
				entry.Level, entry.Ordinal, len(entry.Quiz.Options))
		}
		if entry.Quiz.CorrectOption < 0 || entry.Quiz.CorrectOption > 3 {
			return nil, nil, fmt.Errorf("quiz for %s/%d has correct option out of range: %d",
				entry.Level, entry.Ordinal, entry.Quiz.CorrectOption)
		}

		var options [4]string
		copy(options[:], entry.Quiz.Options)
		quizzes[i] = curriculum.NewQuiz(0, entry.Quiz.Question, options, entry.Quiz.CorrectOption)
	}

	return lessons, quizzes, nil
}
