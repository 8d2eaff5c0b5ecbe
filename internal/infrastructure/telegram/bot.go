package telegram

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram bot API
type Bot struct {
	api *tgbotapi.BotAPI
}

// NewBot creates a new Telegram bot
func NewBot(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	api.Debug = false
	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Bot{api: api}, nil
}

// GetUpdatesChan returns a channel for receiving updates
func (b *Bot) GetUpdatesChan() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	return b.api.GetUpdatesChan(u)
}

// StopReceivingUpdates stops the update polling loop
func (b *Bot) StopReceivingUpdates() {
	b.api.StopReceivingUpdates()
}

// SendMessage sends a plain text message
func (b *Bot) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}

// SendMessageWithReplyKeyboard sends a message and replaces the user's
// reply keyboard
func (b *Bot) SendMessageWithReplyKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	_, err := b.api.Send(msg)
	return err
}

// SendCode sends text formatted as a monospace block, for sandbox output
func (b *Bot) SendCode(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("```\n%s\n```", text))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := b.api.Send(msg); err != nil {
		// Output may contain sequences Telegram rejects as markdown;
		// resend plain rather than dropping it
		return b.SendMessage(chatID, text)
	}
	return nil
}

// SetupCommands configures the bot commands with BotFather
func (b *Bot) SetupCommands() error {
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "🏠 Welcome message and main menu",
		},
		{
			Command:     "help",
			Description: "📋 How the tutor works",
		},
	}

	setCommands := tgbotapi.NewSetMyCommands(commands...)
	_, err := b.api.Request(setCommands)
	if err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}

	log.Printf("Bot commands configured successfully")
	return nil
}
