// Package progress contains the pure unlock-gating rules that decide which
// lessons a user may open based on their cumulative quiz score.
package progress

// IsUnlocked reports whether the lesson at the given 1-based ordinal is open
// for a user with the given progress counter. The first lesson is always
// open; each later lesson requires one more completed quiz than the one
// before it.
func IsUnlocked(ordinal, progress int) bool {
	return ordinal == 1 || progress >= ordinal-1
}

// CompletionPercent returns the completion percentage of a level with
// totalLessons lessons for the given progress counter, clamped to [0, 100].
// A level with no lessons reports 0.
func CompletionPercent(progress, totalLessons int) int {
	if totalLessons <= 0 {
		return 0
	}
	pct := 100 * progress / totalLessons
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
