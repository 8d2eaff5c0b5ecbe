package usecases

import (
	"context"
	"log"
	"sync"
	"time"

	"python-tutor-bot/internal/domain/curriculum"
	"python-tutor-bot/internal/domain/locale"
	"python-tutor-bot/internal/domain/progress"
	"python-tutor-bot/internal/domain/user"
)

// MessageSender delivers a text to a user outside the request/reply cycle
type MessageSender interface {
	SendMessage(chatID int64, text string) error
}

// ReminderUseCase nudges learners who have gone quiet before finishing
// their level
type ReminderUseCase struct {
	sender         MessageSender
	userRepo       user.Repository
	curriculumRepo curriculum.Repository
	texts          locale.Service

	checkInterval time.Duration
	inactiveAfter time.Duration

	mu           sync.Mutex
	lastReminded map[user.ID]time.Time
}

// NewReminderUseCase creates a new reminder use case
func NewReminderUseCase(
	sender MessageSender,
	userRepo user.Repository,
	curriculumRepo curriculum.Repository,
	texts locale.Service,
) *ReminderUseCase {
	return &ReminderUseCase{
		sender:         sender,
		userRepo:       userRepo,
		curriculumRepo: curriculumRepo,
		texts:          texts,
		checkInterval:  time.Hour,
		inactiveAfter:  24 * time.Hour,
		lastReminded:   make(map[user.ID]time.Time),
	}
}

// StartReminderService runs the periodic reminder sweep until the context
// is cancelled
func (uc *ReminderUseCase) StartReminderService(ctx context.Context) {
	log.Printf("Reminder service started (every %v, inactive after %v)", uc.checkInterval, uc.inactiveAfter)

	ticker := time.NewTicker(uc.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reminder service stopping...")
			return
		case <-ticker.C:
			uc.sweep(ctx)
		}
	}
}

// sweep sends one nudge to each user who has been inactive past the
// threshold and has lessons left in their level. A user is nudged at most
// once per inactivity window.
func (uc *ReminderUseCase) sweep(ctx context.Context) {
	users, err := uc.userRepo.GetAllUsers(ctx)
	if err != nil {
		log.Printf("Reminder sweep failed to load users: %v", err)
		return
	}

	now := time.Now()
	for _, u := range users {
		if now.Sub(u.LastActive()) < uc.inactiveAfter {
			continue
		}
		if uc.recentlyReminded(u.ID(), now) {
			continue
		}

		lessons, err := uc.curriculumRepo.ListLessons(ctx, u.Level())
		if err != nil {
			log.Printf("Reminder sweep failed to list lessons: %v", err)
			continue
		}
		if progress.CompletionPercent(u.Progress(), len(lessons)) >= 100 {
			continue
		}

		text := uc.texts.Text(u.Language(), locale.KeyReminder)
		if err := uc.sender.SendMessage(int64(u.ID()), text); err != nil {
			log.Printf("Failed to send reminder to user %d: %v", u.ID(), err)
			continue
		}
		uc.markReminded(u.ID(), now)
	}
}

func (uc *ReminderUseCase) recentlyReminded(id user.ID, now time.Time) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	last, ok := uc.lastReminded[id]
	return ok && now.Sub(last) < uc.inactiveAfter
}

func (uc *ReminderUseCase) markReminded(id user.ID, now time.Time) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.lastReminded[id] = now
}
