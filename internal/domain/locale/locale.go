// Package locale defines the contract for the localization service. The
// service is consulted for rendering only: control decisions are made on
// canonical commands and enums, never on localized strings.
package locale

import (
	"python-tutor-bot/internal/domain/session"
	"python-tutor-bot/internal/domain/user"
)

// Message keys understood by the localization service
const (
	KeyWelcome          = "welcome"
	KeyMenu             = "menu"
	KeyChooseLevel      = "choose_level"
	KeyChooseLanguage   = "choose_language"
	KeyLessonsList      = "lessons_list"
	KeyLessonContent    = "lesson_content"
	KeyLessonLocked     = "lesson_locked"
	KeyQuizIntro        = "quiz_intro"
	KeyQuizCorrect      = "quiz_correct"
	KeyQuizIncorrect    = "quiz_incorrect"
	KeyProgressReport   = "progress_report"
	KeySandboxIntro     = "sandbox_intro"
	KeySandboxNoOutput  = "sandbox_no_output"
	KeySandboxTimeout   = "sandbox_timeout"
	KeySandboxTruncated = "sandbox_truncated"
	KeyFallback         = "fallback"
	KeyHelp             = "help"
	KeyErrorRetry       = "error_retry"
	KeyReminder         = "reminder"
)

// Service resolves text for rendering and maps rendered labels back to
// canonical commands.
type Service interface {
	// Text returns the localized message for a key, formatting params into
	// the message's placeholders.
	Text(lang user.Language, key string, params ...interface{}) string

	// Command resolves inbound text to the canonical command whose rendered
	// label it matches in the given language.
	Command(lang user.Language, text string) (session.Command, bool)

	// CommandLabel returns the localized button label for a command.
	CommandLabel(lang user.Language, cmd session.Command) string

	// LanguageLabel returns the flag-decorated picker label for a
	// language, e.g. "🇬🇧 EN".
	LanguageLabel(lang user.Language) string
}
