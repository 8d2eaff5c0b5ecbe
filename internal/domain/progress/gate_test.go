package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUnlocked_FirstLessonAlwaysOpen(t *testing.T) {
	for _, p := range []int{0, 1, 4, 100} {
		assert.True(t, IsUnlocked(1, p), "progress=%d", p)
	}
}

func TestIsUnlocked_LaterLessonsRequirePriorQuizzes(t *testing.T) {
	tests := []struct {
		ordinal  int
		progress int
		want     bool
	}{
		{2, 0, false},
		{2, 1, true},
		{3, 1, false},
		{3, 2, true},
		{5, 3, false},
		{5, 4, true},
		{5, 9, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsUnlocked(tt.ordinal, tt.progress),
			"ordinal=%d progress=%d", tt.ordinal, tt.progress)
	}
}

func TestIsUnlocked_MatchesClosedForm(t *testing.T) {
	for ordinal := 2; ordinal <= 20; ordinal++ {
		for progress := 0; progress <= 25; progress++ {
			assert.Equal(t, progress >= ordinal-1, IsUnlocked(ordinal, progress))
		}
	}
}

func TestCompletionPercent(t *testing.T) {
	assert.Equal(t, 0, CompletionPercent(0, 5))
	assert.Equal(t, 20, CompletionPercent(1, 5))
	assert.Equal(t, 60, CompletionPercent(3, 5))
	assert.Equal(t, 100, CompletionPercent(5, 5))
}

func TestCompletionPercent_Clamped(t *testing.T) {
	// Progress past the level's lesson count never exceeds 100
	assert.Equal(t, 100, CompletionPercent(12, 5))
	assert.Equal(t, 0, CompletionPercent(-1, 5))
}

func TestCompletionPercent_EmptyLevel(t *testing.T) {
	assert.Equal(t, 0, CompletionPercent(3, 0))
	assert.Equal(t, 0, CompletionPercent(0, 0))
}
