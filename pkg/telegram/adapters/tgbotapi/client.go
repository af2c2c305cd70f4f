package tgbotapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"tokenwatch/pkg/errors"
	"tokenwatch/pkg/logger"
	"tokenwatch/pkg/telegram"
)

// Bot represents a Telegram bot that implements telegram.Bot interface
type Bot struct {
	api         *tgbotapi.BotAPI
	updates     tgbotapi.UpdatesChannel
	log         *logger.Logger
	mu          sync.RWMutex
	running     bool
	msgHandler  func(telegram.Update)
	rateLimiter *rate.Limiter
}

// Config contains Telegram bot configuration
type Config struct {
	Token          string
	Debug          bool
	Timeout        int // Update timeout in seconds
	HTTPTimeout    time.Duration
	RateLimitBurst int // Rate limiter burst (default: 30)
	RateLimitRate  int // Rate limiter per second (default: 20)
}

// NewBot creates a new Telegram bot instance that implements telegram.Bot interface
func NewBot(cfg Config, log *logger.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "telegram bot token is required")
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = 60
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 30
	}
	if cfg.RateLimitRate == 0 {
		cfg.RateLimitRate = 20
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create telegram bot")
	}

	api.Debug = cfg.Debug

	log.Infof("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:         api,
		log:         log.With("component", "telegram_bot"),
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimitRate), cfg.RateLimitBurst),
	}, nil
}

// Start begins polling for updates
func (b *Bot) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return errors.New("bot is already running")
	}
	b.running = true
	b.mu.Unlock()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.updates = updates

	b.log.Infow("Starting to poll for updates")

	for {
		select {
		case <-ctx.Done():
			b.log.Infow("Stopping bot due to context cancellation")
			b.Stop()
			return ctx.Err()

		case tgUpdate := <-updates:
			if b.msgHandler != nil {
				// Convert tgbotapi.Update to telegram.Update (abstraction layer)
				update := convertUpdate(tgUpdate)
				go b.msgHandler(update)
			}
		}
	}
}

// Stop stops the bot
func (b *Bot) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.running {
		return
	}

	b.api.StopReceivingUpdates()
	b.running = false
	b.log.Infow("Bot stopped")
}

// SetHandler sets the message handler (uses abstracted Update type)
func (b *Bot) SetHandler(handler func(telegram.Update)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgHandler = handler
}

// SendMessage sends a text message
func (b *Bot) SendMessage(chatID int64, text string) error {
	if err := b.rateLimiter.Wait(context.Background()); err != nil {
		return errors.Wrap(err, "rate limiter error")
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"

	if _, err := b.api.Send(msg); err != nil {
		b.log.Errorw("Failed to send message", "chat_id", chatID, "error", err)
		return errors.Wrap(err, "failed to send telegram message")
	}

	return nil
}

// SendMessageWithKeyboard sends message with inline keyboard
func (b *Bot) SendMessageWithKeyboard(chatID int64, text string, keyboard telegram.InlineKeyboardMarkup) error {
	if err := b.rateLimiter.Wait(context.Background()); err != nil {
		return errors.Wrap(err, "rate limiter error")
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = convertKeyboardToTgbotapi(keyboard)

	if _, err := b.api.Send(msg); err != nil {
		b.log.Errorw("Failed to send message with keyboard", "chat_id", chatID, "error", err)
		return errors.Wrap(err, "failed to send telegram message")
	}

	return nil
}

// SendMessageWithOptions sends message with custom options
func (b *Bot) SendMessageWithOptions(chatID int64, text string, opts telegram.MessageOptions) (int, error) {
	if err := b.rateLimiter.Wait(context.Background()); err != nil {
		return 0, errors.Wrap(err, "rate limiter error")
	}

	msg := tgbotapi.NewMessage(chatID, text)

	if opts.ParseMode != "" {
		msg.ParseMode = opts.ParseMode
	} else {
		msg.ParseMode = "Markdown"
	}

	msg.DisableWebPagePreview = opts.DisableWebPagePreview

	if opts.ReplyToMessageID > 0 {
		msg.ReplyToMessageID = opts.ReplyToMessageID
	}

	if opts.Keyboard != nil {
		msg.ReplyMarkup = convertKeyboardToTgbotapi(*opts.Keyboard)
	}

	sentMsg, err := b.api.Send(msg)
	if err != nil {
		b.log.Errorw("Failed to send message with options", "chat_id", chatID, "error", err)
		return 0, errors.Wrap(err, "failed to send telegram message")
	}

	return sentMsg.MessageID, nil
}

// EditMessage edits existing message
func (b *Bot) EditMessage(chatID int64, messageID int, text string, keyboard *telegram.InlineKeyboardMarkup) error {
	if err := b.rateLimiter.Wait(context.Background()); err != nil {
		return errors.Wrap(err, "rate limiter error")
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"

	if keyboard != nil {
		tgKeyboard := convertKeyboardToTgbotapi(*keyboard)
		edit.ReplyMarkup = &tgKeyboard
	}

	if _, err := b.api.Send(edit); err != nil {
		b.log.Debugw("Failed to edit message", "chat_id", chatID, "message_id", messageID, "error", err)
		return errors.Wrap(err, "failed to edit telegram message")
	}

	return nil
}

// DeleteMessage removes a previously sent message
func (b *Bot) DeleteMessage(chatID int64, messageID int) error {
	if err := b.rateLimiter.Wait(context.Background()); err != nil {
		return errors.Wrap(err, "rate limiter error")
	}

	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.log.Debugw("Failed to delete message", "chat_id", chatID, "message_id", messageID, "error", err)
		return errors.Wrap(err, "failed to delete telegram message")
	}

	return nil
}

// AnswerCallback answers callback query
func (b *Bot) AnswerCallback(callbackQueryID string, text string, showAlert bool) error {
	callback := tgbotapi.NewCallback(callbackQueryID, text)
	callback.ShowAlert = showAlert

	if _, err := b.api.Request(callback); err != nil {
		b.log.Errorw("Failed to answer callback", "callback_id", callbackQueryID, "error", err)
		return errors.Wrap(err, "failed to answer callback query")
	}

	return nil
}

// Verify Bot implements telegram.Bot interface at compile time
var _ telegram.Bot = (*Bot)(nil)

// =============================================================================
// Conversion Functions (tgbotapi -> telegram abstractions)
// =============================================================================

// convertUpdate converts tgbotapi.Update to telegram.Update (abstraction layer)
func convertUpdate(tgUpdate tgbotapi.Update) telegram.Update {
	update := telegram.Update{
		UpdateID: tgUpdate.UpdateID,
	}

	if tgUpdate.Message != nil {
		update.Message = convertMessage(tgUpdate.Message)
	}

	if tgUpdate.CallbackQuery != nil {
		update.CallbackQuery = convertCallbackQuery(tgUpdate.CallbackQuery)
	}

	return update
}

// convertMessage converts tgbotapi.Message to telegram.Message
func convertMessage(tgMsg *tgbotapi.Message) *telegram.Message {
	msg := &telegram.Message{
		MessageID: tgMsg.MessageID,
		Text:      tgMsg.Text,
		IsCommand: tgMsg.IsCommand(),
	}

	if tgMsg.From != nil {
		msg.From = convertUser(tgMsg.From)
	}

	if tgMsg.Chat != nil {
		msg.Chat = convertChat(tgMsg.Chat)
	}

	if msg.IsCommand {
		msg.Command = tgMsg.Command()
		msg.Arguments = tgMsg.CommandArguments()
	}

	return msg
}

// convertCallbackQuery converts tgbotapi.CallbackQuery to telegram.CallbackQuery
func convertCallbackQuery(tgCallback *tgbotapi.CallbackQuery) *telegram.CallbackQuery {
	callback := &telegram.CallbackQuery{
		ID:   tgCallback.ID,
		Data: tgCallback.Data,
	}

	if tgCallback.From != nil {
		callback.From = convertUser(tgCallback.From)
	}

	if tgCallback.Message != nil {
		callback.Message = convertMessage(tgCallback.Message)
	}

	return callback
}

// convertUser converts tgbotapi.User to telegram.User
func convertUser(tgUser *tgbotapi.User) *telegram.User {
	return &telegram.User{
		ID:        tgUser.ID,
		FirstName: tgUser.FirstName,
		LastName:  tgUser.LastName,
		Username:  tgUser.UserName,
		IsBot:     tgUser.IsBot,
	}
}

// convertChat converts tgbotapi.Chat to telegram.Chat
func convertChat(tgChat *tgbotapi.Chat) *telegram.Chat {
	return &telegram.Chat{
		ID:       tgChat.ID,
		Type:     tgChat.Type,
		Title:    tgChat.Title,
		Username: tgChat.UserName,
	}
}

// convertKeyboardToTgbotapi converts telegram.InlineKeyboardMarkup to tgbotapi.InlineKeyboardMarkup
func convertKeyboardToTgbotapi(keyboard telegram.InlineKeyboardMarkup) tgbotapi.InlineKeyboardMarkup {
	var tgRows [][]tgbotapi.InlineKeyboardButton

	for _, row := range keyboard.InlineKeyboard {
		var tgRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			tgButton := tgbotapi.InlineKeyboardButton{
				Text: button.Text,
			}

			if button.CallbackData != "" {
				tgButton.CallbackData = &button.CallbackData
			}

			if button.URL != "" {
				tgButton.URL = &button.URL
			}

			tgRow = append(tgRow, tgButton)
		}
		tgRows = append(tgRows, tgRow)
	}

	return tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: tgRows,
	}
}
