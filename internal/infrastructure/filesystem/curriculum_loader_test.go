package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"python-tutor-bot/internal/domain/curriculum"
)

func writeCurriculum(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "curriculum.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile_ParsesLessonsAndQuizzes(t *testing.T) {
	path := writeCurriculum(t, `{
		"lessons": [
			{
				"level": "beginner",
				"ordinal": 1,
				"title": {"en": "Intro", "fr": "Intro (fr)", "ar": "Intro (ar)"},
				"explanation": "What Python is",
				"example": "print('hi')",
				"quiz": {
					"question": "What prints?",
					"options": ["hi", "ho", "error", "nothing"],
					"correct_option": 0
				}
			},
			{
				"level": "beginner",
				"ordinal": 2,
				"title": {"en": "Variables"},
				"explanation": "Names and values",
				"example": "x = 1"
			}
		]
	}`)

	lessons, quizzes, err := NewCurriculumLoader().LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, lessons, 2)

	assert.Equal(t, curriculum.LevelBeginner, lessons[0].Level())
	assert.Equal(t, 1, lessons[0].Ordinal())
	assert.Equal(t, "Intro (fr)", lessons[0].Title("fr"))
	// Missing translations fall back to the english title
	assert.Equal(t, "Variables", lessons[1].Title("fr"))

	require.Len(t, quizzes, 1)
	quiz := quizzes[0]
	require.NotNil(t, quiz)
	assert.Equal(t, "What prints?", quiz.Question())
	assert.Equal(t, 0, quiz.CorrectOption())
	assert.Equal(t, [4]string{"hi", "ho", "error", "nothing"}, quiz.Options())
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, _, err := NewCurriculumLoader().LoadFromFile("/nonexistent/curriculum.json")
	assert.Error(t, err)
}

func TestLoadFromFile_RejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "malformed json",
			content: `{"lessons": [`,
		},
		{
			name: "unknown level",
			content: `{"lessons": [{"level": "wizard", "ordinal": 1,
				"title": {"en": "X"}, "explanation": "e", "example": "x"}]}`,
		},
		{
			name: "zero ordinal",
			content: `{"lessons": [{"level": "beginner", "ordinal": 0,
				"title": {"en": "X"}, "explanation": "e", "example": "x"}]}`,
		},
		{
			name: "missing english title",
			content: `{"lessons": [{"level": "beginner", "ordinal": 1,
				"title": {"fr": "X"}, "explanation": "e", "example": "x"}]}`,
		},
		{
			name: "quiz with three options",
			content: `{"lessons": [{"level": "beginner", "ordinal": 1,
				"title": {"en": "X"}, "explanation": "e", "example": "x",
				"quiz": {"question": "q", "options": ["a", "b", "c"], "correct_option": 0}}]}`,
		},
		{
			name: "correct option out of range",
			content: `{"lessons": [{"level": "beginner", "ordinal": 1,
				"title": {"en": "X"}, "explanation": "e", "example": "x",
				"quiz": {"question": "q", "options": ["a", "b", "c", "d"], "correct_option": 4}}]}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeCurriculum(t, tc.content)
			_, _, err := NewCurriculumLoader().LoadFromFile(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile_ShippedCurriculum(t *testing.T) {
	lessons, quizzes, err := NewCurriculumLoader().LoadFromFile("../../../curriculum.json")
	require.NoError(t, err)

	byLevel := map[curriculum.Level]int{}
	for _, lesson := range lessons {
		byLevel[lesson.Level()]++
	}
	assert.Equal(t, 5, byLevel[curriculum.LevelBeginner])
	assert.Equal(t, 5, byLevel[curriculum.LevelIntermediate])
	assert.Equal(t, 5, byLevel[curriculum.LevelAdvanced])

	// Every shipped lesson carries a quiz and all three translations
	assert.Len(t, quizzes, len(lessons))
	for _, lesson := range lessons {
		titles := lesson.Titles()
		assert.NotEmpty(t, titles["en"])
		assert.NotEmpty(t, titles["fr"])
		assert.NotEmpty(t, titles["ar"])
	}
}
