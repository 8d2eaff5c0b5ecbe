package usecases

import (
	"context"
	"fmt"

	"python-tutor-bot/internal/domain/user"
)

// UserUseCase handles user profile operations
type UserUseCase struct {
	userRepo user.Repository
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(userRepo user.Repository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// GetOrCreateUser gets an existing user or creates one with the default
// profile (english, beginner, first lesson, zero progress)
func (uc *UserUseCase) GetOrCreateUser(ctx context.Context, id user.ID) (*user.User, error) {
	existing, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if existing != nil {
		if err := uc.userRepo.UpdateLastActive(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to touch user: %w", err)
		}
		// Keep the in-memory copy in step with what was just persisted
		existing.UpdateLastActive()
		return existing, nil
	}

	newUser := user.NewUser(id)
	if err := uc.userRepo.Save(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to save new user: %w", err)
	}

	return newUser, nil
}
