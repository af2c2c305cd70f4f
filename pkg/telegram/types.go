package telegram

import (
	"context"
)

// Bot interface abstracts telegram bot operations (for dependency injection)
type Bot interface {
	// Start starts the bot update loop (polling)
	Start(ctx context.Context) error

	// Stop stops the bot
	Stop()

	// SetHandler sets update handler
	SetHandler(handler func(Update))

	// SendMessage sends a plain text message
	SendMessage(chatID int64, text string) error

	// SendMessageWithKeyboard sends message with inline keyboard
	SendMessageWithKeyboard(chatID int64, text string, keyboard InlineKeyboardMarkup) error

	// SendMessageWithOptions sends message with custom options and returns
	// the transport-assigned message id
	SendMessageWithOptions(chatID int64, text string, opts MessageOptions) (int, error)

	// EditMessage edits an existing message in place
	EditMessage(chatID int64, messageID int, text string, keyboard *InlineKeyboardMarkup) error

	// DeleteMessage removes a previously sent message
	DeleteMessage(chatID int64, messageID int) error

	// AnswerCallback answers callback query
	AnswerCallback(callbackQueryID string, text string, showAlert bool) error
}

// MessageOptions defines options for sending messages
type MessageOptions struct {
	// Keyboard for inline buttons
	Keyboard *InlineKeyboardMarkup

	// ParseMode (Markdown, HTML, MarkdownV2)
	ParseMode string

	// DisableWebPagePreview disables link previews
	DisableWebPagePreview bool

	// ReplyToMessageID replies to specific message
	ReplyToMessageID int
}
