package handlers

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"python-tutor-bot/internal/application/usecases"
	"python-tutor-bot/internal/domain/locale"
	"python-tutor-bot/internal/domain/session"
	"python-tutor-bot/internal/domain/user"
	"python-tutor-bot/internal/infrastructure/telegram"
	ifacetelegram "python-tutor-bot/internal/interfaces/telegram"
)

// BotHandler connects the Telegram transport to the tutor state machine
type BotHandler struct {
	bot        *telegram.Bot
	tutor      *usecases.TutorUseCase
	texts      locale.Service
	dispatcher *ifacetelegram.Dispatcher
}

// NewBotHandler creates a new bot handler
func NewBotHandler(bot *telegram.Bot, tutor *usecases.TutorUseCase, texts locale.Service) *BotHandler {
	h := &BotHandler{
		bot:   bot,
		tutor: tutor,
		texts: texts,
	}
	h.dispatcher = ifacetelegram.NewDispatcher(h.handleUpdate)
	return h
}

// Start consumes updates until the context is cancelled. Updates are fanned
// out through the per-user dispatcher so that one user's messages are
// processed in arrival order while users never wait on each other.
func (h *BotHandler) Start(ctx context.Context) error {
	updates := h.bot.GetUpdatesChan()

	log.Println("Bot started. Waiting for updates...")

	for {
		select {
		case <-ctx.Done():
			log.Println("Bot stopping...")
			h.bot.StopReceivingUpdates()
			return nil
		case update := <-updates:
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			h.dispatcher.Enqueue(ctx, update.Message.From.ID, update)
		}
	}
}

// handleUpdate processes a single message inside the user's queue turn
func (h *BotHandler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	userID := user.ID(message.From.ID)
	chatID := message.Chat.ID

	var reply *session.Reply
	var err error

	switch message.Command() {
	case "start":
		reply, err = h.tutor.Start(ctx, userID)
	case "help":
		reply, err = h.tutor.Help(ctx, userID)
	default:
		reply, err = h.tutor.HandleText(ctx, userID, message.Text)
	}

	if err != nil {
		// Scoped to this interaction; the process and other users carry on
		log.Printf("user %d: transition failed: %v", userID, err)
		h.sendRetryPrompt(chatID)
		return
	}

	h.send(chatID, reply)
}

// send delivers a reply, rendering the keyboard when one is attached
func (h *BotHandler) send(chatID int64, reply *session.Reply) {
	var err error
	switch {
	case reply.Monospace:
		err = h.bot.SendCode(chatID, reply.Text)
	case reply.Keyboard != nil:
		err = h.bot.SendMessageWithReplyKeyboard(chatID, reply.Text, renderKeyboard(reply.Keyboard))
	default:
		err = h.bot.SendMessage(chatID, reply.Text)
	}
	if err != nil {
		log.Printf("Failed to send message to chat %d: %v", chatID, err)
	}
}

// sendRetryPrompt tells the user to try again. The profile may be
// unreachable at this point, so the prompt stays in the default language.
func (h *BotHandler) sendRetryPrompt(chatID int64) {
	text := h.texts.Text(user.LanguageEnglish, locale.KeyErrorRetry)
	if err := h.bot.SendMessage(chatID, text); err != nil {
		log.Printf("Failed to send retry prompt to chat %d: %v", chatID, err)
	}
}
