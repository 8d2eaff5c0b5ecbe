// Package localization implements the locale service with a static en/fr/ar
// catalog compiled into the binary.
package localization

import (
	"fmt"
	"strings"

	"python-tutor-bot/internal/domain/locale"
	"python-tutor-bot/internal/domain/session"
	"python-tutor-bot/internal/domain/user"
)

// Service resolves localized texts and reverse-maps rendered labels to
// canonical commands.
type Service struct {
	// label -> command, per language, built once at construction
	commandIndex map[user.Language]map[string]session.Command
}

// NewService creates a localization service
func NewService() *Service {
	index := make(map[user.Language]map[string]session.Command, len(commandLabels))
	for lang, labels := range commandLabels {
		index[lang] = make(map[string]session.Command, len(labels))
		for cmd, label := range labels {
			index[lang][label] = cmd
		}
	}
	return &Service{commandIndex: index}
}

// Text returns the localized message for a key, falling back to English
// when the language or key is missing from the catalog.
func (s *Service) Text(lang user.Language, key string, params ...interface{}) string {
	catalog, ok := messages[lang]
	if !ok {
		catalog = messages[user.LanguageEnglish]
	}
	msg, ok := catalog[key]
	if !ok {
		msg, ok = messages[user.LanguageEnglish][key]
		if !ok {
			return key
		}
	}
	if len(params) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, params...)
}

// Command resolves inbound text to a canonical command by exact match
// against the rendered labels of the given language.
func (s *Service) Command(lang user.Language, text string) (session.Command, bool) {
	index, ok := s.commandIndex[lang]
	if !ok {
		index = s.commandIndex[user.LanguageEnglish]
	}
	cmd, ok := index[strings.TrimSpace(text)]
	return cmd, ok
}

// CommandLabel returns the localized button label for a command
func (s *Service) CommandLabel(lang user.Language, cmd session.Command) string {
	labels, ok := commandLabels[lang]
	if !ok {
		labels = commandLabels[user.LanguageEnglish]
	}
	return labels[cmd]
}

// LanguageLabel returns the flag-decorated picker label for a language,
// e.g. "🇬🇧 EN"
func (s *Service) LanguageLabel(lang user.Language) string {
	return fmt.Sprintf("%s %s", languageFlags[lang], strings.ToUpper(string(lang)))
}

var _ locale.Service = (*Service)(nil)
