// Package telegram routes incoming bot updates to the watch engine and the
// command registry.
package telegram

import (
	"context"

	"tokenwatch/pkg/logger"
	"tokenwatch/pkg/telegram"
)

// WatchService defines the watch engine operations the router needs.
type WatchService interface {
	OnDetect(ctx context.Context, chatID int64, text string) error
	OnRefresh(ctx context.Context, chatID int64, callbackID, payload string) error
}

// Handler processes Telegram updates using pkg/telegram framework
type Handler struct {
	bot             telegram.Bot
	commandRegistry *telegram.CommandRegistry
	watchService    WatchService
	log             *logger.Logger
}

// NewHandler creates a new telegram handler
func NewHandler(
	bot telegram.Bot,
	commandRegistry *telegram.CommandRegistry,
	watchService WatchService,
	log *logger.Logger,
) *Handler {
	return &Handler{
		bot:             bot,
		commandRegistry: commandRegistry,
		watchService:    watchService,
		log:             log.With("component", "telegram_handler"),
	}
}

// HandleUpdate processes incoming Telegram update (uses abstracted types)
// This is the main entry point for all updates
func (h *Handler) HandleUpdate(update telegram.Update) {
	ctx := context.Background()

	// Handle callback queries (inline keyboard buttons)
	if update.HasCallback() {
		if err := h.handleCallbackQuery(ctx, update.CallbackQuery); err != nil {
			h.log.Errorw("Failed to handle callback query",
				"callback_id", update.CallbackQuery.ID,
				"error", err,
			)
		}
		return
	}

	// Handle regular messages
	if update.HasMessage() {
		if err := h.handleMessage(ctx, update.Message); err != nil {
			h.log.Errorw("Failed to handle message",
				"message_id", update.Message.MessageID,
				"error", err,
			)
		}
		return
	}
}

// handleMessage routes commands to the registry and everything else through
// address detection.
func (h *Handler) handleMessage(ctx context.Context, msg *telegram.Message) error {
	if msg.From == nil || msg.From.IsBot || msg.Chat == nil {
		return nil
	}

	chatID := msg.Chat.ID

	if msg.IsCommand {
		h.log.Debugw("Routing command",
			"telegram_id", msg.From.ID,
			"command", msg.Command,
			"has_args", msg.Arguments != "",
		)
		return h.commandRegistry.Handle(ctx, msg.From.ID, chatID, msg.Command, msg.Arguments, msg.Text)
	}

	return h.watchService.OnDetect(ctx, chatID, msg.Text)
}

// handleCallbackQuery forwards button presses to the watch engine. Payloads
// it does not own are answered to stop the client spinner and dropped.
func (h *Handler) handleCallbackQuery(ctx context.Context, cb *telegram.CallbackQuery) error {
	if cb.Message == nil || cb.Message.Chat == nil {
		h.log.Debugw("Callback without message context ignored", "callback_id", cb.ID)
		return h.bot.AnswerCallback(cb.ID, "", false)
	}

	return h.watchService.OnRefresh(ctx, cb.Message.Chat.ID, cb.ID, cb.Data)
}
