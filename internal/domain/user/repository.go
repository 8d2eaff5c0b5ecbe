package user

import (
	"context"

	"python-tutor-bot/internal/domain/curriculum"
)

// Repository defines the contract for user profile persistence. All
// mutations are atomic single-row updates so that concurrent messages from
// the same user can never observe or write a torn profile.
type Repository interface {
	// Save persists a new user to storage
	Save(ctx context.Context, user *User) error

	// FindByID retrieves a user by ID, or nil if the user does not exist
	FindByID(ctx context.Context, id ID) (*User, error)

	// UpdateLanguage persists a language change
	UpdateLanguage(ctx context.Context, id ID, language Language) error

	// UpdateLevel persists an active-level change
	UpdateLevel(ctx context.Context, id ID, level curriculum.Level) error

	// ApplyQuizSuccess atomically records a first-time completion of the
	// lesson at (level, ordinal) and increments progress and the lesson
	// cursor. The completion record is the idempotence guard: a re-answered
	// or duplicate-delivered quiz finds the record already present and does
	// not increment. Returns whether the increment was applied.
	ApplyQuizSuccess(ctx context.Context, id ID, level curriculum.Level, ordinal int) (bool, error)

	// UpdateLastActive updates the last active time of a user
	UpdateLastActive(ctx context.Context, id ID) error

	// GetAllUsers retrieves all users from storage
	GetAllUsers(ctx context.Context) ([]*User, error)
}
