package user

import (
	"strings"
	"time"

	"python-tutor-bot/internal/domain/curriculum"
)

// User represents a learner's persisted profile
type User struct {
	id           ID
	language     Language
	level        curriculum.Level
	lessonCursor int
	progress     int
	createdAt    time.Time
	lastActive   time.Time
}

// ID represents the user's unique identifier, supplied by the transport layer
type ID int64

// Language represents the user's interface language
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageFrench  Language = "fr"
	LanguageArabic  Language = "ar"
)

// Languages returns all supported interface languages
func Languages() []Language {
	return []Language{LanguageEnglish, LanguageFrench, LanguageArabic}
}

// IsValidLanguage checks if a language code is supported
func IsValidLanguage(code string) bool {
	switch Language(code) {
	case LanguageEnglish, LanguageFrench, LanguageArabic:
		return true
	default:
		return false
	}
}

// ParseLanguage resolves free text to a supported language. The language
// keyboard renders buttons like "🇬🇧 EN"; matching requires the uppercase
// two-letter code as a suffix so ordinary words ("open", "jour") never
// trigger a language switch.
func ParseLanguage(text string) (Language, bool) {
	trimmed := strings.TrimSpace(text)
	for _, lang := range Languages() {
		if strings.HasSuffix(trimmed, strings.ToUpper(string(lang))) {
			return lang, true
		}
	}
	return "", false
}

// NewUser creates a new user with default profile values
func NewUser(id ID) *User {
	now := time.Now()
	return &User{
		id:           id,
		language:     LanguageEnglish,
		level:        curriculum.LevelBeginner,
		lessonCursor: 1,
		progress:     0,
		createdAt:    now,
		lastActive:   now,
	}
}

// Restore rebuilds a user from persisted state (used by repository)
func Restore(id ID, language Language, level curriculum.Level, lessonCursor, progress int, createdAt, lastActive time.Time) *User {
	return &User{
		id:           id,
		language:     language,
		level:        level,
		lessonCursor: lessonCursor,
		progress:     progress,
		createdAt:    createdAt,
		lastActive:   lastActive,
	}
}

// Getters
func (u *User) ID() ID                  { return u.id }
func (u *User) Language() Language      { return u.language }
func (u *User) Level() curriculum.Level { return u.level }
func (u *User) LessonCursor() int       { return u.lessonCursor }
func (u *User) Progress() int           { return u.progress }
func (u *User) CreatedAt() time.Time    { return u.createdAt }
func (u *User) LastActive() time.Time   { return u.lastActive }

// SetLanguage changes the user's interface language
func (u *User) SetLanguage(language Language) {
	u.language = language
}

// SetLevel changes the user's active level
func (u *User) SetLevel(level curriculum.Level) {
	u.level = level
}

// UpdateLastActive updates the last active timestamp
func (u *User) UpdateLastActive() {
	u.lastActive = time.Now()
}
