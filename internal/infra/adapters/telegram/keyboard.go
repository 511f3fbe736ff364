package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"flower-shop-bot/internal/domain/ports/adapter"
)

// replyKeyboard builds a resized persistent keyboard; empty rows are skipped.
func replyKeyboard(kb adapter.ReplyKeyboard) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(kb))
	for _, row := range kb {
		if len(row) == 0 {
			continue
		}
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			label = strings.TrimSpace(label)
			if label == "" {
				label = "•"
			}
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(buttons...))
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	return markup
}
