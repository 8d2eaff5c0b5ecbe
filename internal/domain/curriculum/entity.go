package curriculum

import "strings"

// Level represents a proficiency tier grouping an ordered sequence of lessons
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels returns all levels in ascending difficulty order
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// Index returns the 0-based position of the level in the curriculum order
func (l Level) Index() int {
	for i, level := range Levels() {
		if level == l {
			return i
		}
	}
	return 0
}

// IsValidLevel checks if a level name is valid
func IsValidLevel(level string) bool {
	switch Level(level) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	default:
		return false
	}
}

// ParseLevel resolves free text to a canonical level. Matching is
// case-insensitive and ignores decorations around the level name, so both
// "beginner" and "🔒 Beginner" resolve to LevelBeginner.
func ParseLevel(text string) (Level, bool) {
	folded := strings.ToLower(text)
	for _, level := range Levels() {
		if strings.Contains(folded, string(level)) {
			return level, true
		}
	}
	return "", false
}

// Lesson represents a single lesson within a level
type Lesson struct {
	id          ID
	level       Level
	ordinal     int
	titles      map[string]string
	explanation string
	example     string
}

// ID represents the lesson's unique identifier
type ID int64

// NewLesson creates a new lesson. Ordinal is the 1-based position within the
// level; titles maps language codes to the localized lesson title.
func NewLesson(level Level, ordinal int, titles map[string]string, explanation, example string) *Lesson {
	return &Lesson{
		level:       level,
		ordinal:     ordinal,
		titles:      titles,
		explanation: explanation,
		example:     example,
	}
}

// Getters
func (l *Lesson) ID() ID              { return l.id }
func (l *Lesson) Level() Level        { return l.level }
func (l *Lesson) Ordinal() int        { return l.ordinal }
func (l *Lesson) Explanation() string { return l.explanation }
func (l *Lesson) Example() string     { return l.example }

// Title returns the lesson title for the given language code, falling back
// to English when no localized title exists.
func (l *Lesson) Title(lang string) string {
	if title, ok := l.titles[lang]; ok && title != "" {
		return title
	}
	return l.titles["en"]
}

// Titles returns all localized titles keyed by language code
func (l *Lesson) Titles() map[string]string {
	return l.titles
}

// SetID sets the lesson ID (used by repository)
func (l *Lesson) SetID(id ID) {
	l.id = id
}

// Quiz represents the single quiz attached to a lesson
type Quiz struct {
	lessonID      ID
	question      string
	options       [4]string
	correctOption int
}

// NewQuiz creates a new quiz. correctOption is the 0-based index into options.
func NewQuiz(lessonID ID, question string, options [4]string, correctOption int) *Quiz {
	return &Quiz{
		lessonID:      lessonID,
		question:      question,
		options:       options,
		correctOption: correctOption,
	}
}

// Getters
func (q *Quiz) LessonID() ID       { return q.lessonID }
func (q *Quiz) Question() string   { return q.question }
func (q *Quiz) Options() [4]string { return q.options }
func (q *Quiz) CorrectOption() int { return q.correctOption }

// SetLessonID sets the owning lesson ID (used by repository)
func (q *Quiz) SetLessonID(id ID) {
	q.lessonID = id
}
