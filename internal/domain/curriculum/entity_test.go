package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
		ok    bool
	}{
		{"beginner", LevelBeginner, true},
		{"Beginner", LevelBeginner, true},
		{"✅ Beginner", LevelBeginner, true},
		{"🔒 Intermediate", LevelIntermediate, true},
		{"ADVANCED", LevelAdvanced, true},
		{"expert", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.input)
		assert.Equal(t, tt.ok, ok, "input=%q", tt.input)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input=%q", tt.input)
		}
	}
}

func TestLevelIndex(t *testing.T) {
	assert.Equal(t, 0, LevelBeginner.Index())
	assert.Equal(t, 1, LevelIntermediate.Index())
	assert.Equal(t, 2, LevelAdvanced.Index())
}

func TestLessonTitle_FallsBackToEnglish(t *testing.T) {
	lesson := NewLesson(LevelBeginner, 1,
		map[string]string{"en": "Intro", "fr": "Introduction"}, "", "")

	assert.Equal(t, "Intro", lesson.Title("en"))
	assert.Equal(t, "Introduction", lesson.Title("fr"))
	assert.Equal(t, "Intro", lesson.Title("ar"))
}
