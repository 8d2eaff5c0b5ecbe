// Package session holds the transient per-user conversation state. Unlike
// the persisted user profile, sessions live only in memory: a process
// restart silently returns every user to the menu.
package session

import (
	"python-tutor-bot/internal/domain/curriculum"
)

// Mode represents the conversational mode a user is currently in
type Mode string

const (
	ModeMenu        Mode = "menu"
	ModeLevelSelect Mode = "level_select"
	ModeLessonList  Mode = "lesson_list"
	ModeQuiz        Mode = "quiz"
	ModeSandbox     Mode = "sandbox"
)

// PendingQuiz holds the context of a quiz that has been presented and not
// yet answered. It is set if and only if the session mode is ModeQuiz.
type PendingQuiz struct {
	LessonID      curriculum.ID
	Level         curriculum.Level
	LessonOrdinal int
	CorrectOption int
}

// Session represents the transient interaction state of one user. The store
// keys sessions by user id; the session itself does not carry it.
type Session struct {
	mode        Mode
	pendingQuiz *PendingQuiz
}

// NewSession creates a session in the initial menu mode
func NewSession() *Session {
	return &Session{mode: ModeMenu}
}

// Getters
func (s *Session) Mode() Mode                { return s.mode }
func (s *Session) PendingQuiz() *PendingQuiz { return s.pendingQuiz }

// SetMode transitions the session to a new mode. Leaving quiz mode always
// drops the pending quiz so the mode/pending invariant holds.
func (s *Session) SetMode(mode Mode) {
	s.mode = mode
	if mode != ModeQuiz {
		s.pendingQuiz = nil
	}
}

// BeginQuiz enters quiz mode with the given pending context
func (s *Session) BeginQuiz(pending PendingQuiz) {
	s.mode = ModeQuiz
	s.pendingQuiz = &pending
}

// ResolveQuiz clears the pending quiz and returns to the menu
func (s *Session) ResolveQuiz() {
	s.pendingQuiz = nil
	s.mode = ModeMenu
}
