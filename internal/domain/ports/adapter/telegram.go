package adapter

import "context"

// ReplyKeyboard is a persistent keyboard of command buttons, row by row.
type ReplyKeyboard [][]string

// SendOptions are the optional parts of an outbound message.
type SendOptions struct {
	Keyboard ReplyKeyboard
	// ParseMode is passed to Telegram as is ("HTML", "MarkdownV2"); empty sends plain text.
	ParseMode string
}

// BotGateway is the outbound side of the chat transport.
type BotGateway interface {
	SendText(ctx context.Context, chatID int64, text string, opts SendOptions) error
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string, opts SendOptions) error
}
