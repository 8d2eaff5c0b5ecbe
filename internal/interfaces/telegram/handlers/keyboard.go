package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"python-tutor-bot/internal/domain/session"
)

// renderKeyboard turns a transport-agnostic keyboard into a Telegram reply
// keyboard. Locked lesson labels are plain buttons too: tapping one only
// echoes its text back, and the state machine treats that as inert.
func renderKeyboard(keyboard *session.Keyboard) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(keyboard.Rows))
	for _, row := range keyboard.Rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, button := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(button.Label))
		}
		rows = append(rows, buttons)
	}

	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.OneTimeKeyboard = keyboard.OneTime
	return markup
}
