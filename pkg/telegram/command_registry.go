package telegram

import (
	"context"
	"strings"

	"tokenwatch/pkg/logger"
)

// CommandContext contains all data for command execution
type CommandContext struct {
	Ctx        context.Context
	TelegramID int64
	ChatID     int64
	Command    string
	Args       string
	RawMessage string
	Bot        Bot // Bot interface for sending messages
}

// CommandHandler is a function that handles a command
type CommandHandler func(ctx *CommandContext) error

// CommandConfig defines a command registration
type CommandConfig struct {
	Name        string         // Primary command name (e.g., "solana")
	Aliases     []string       // Alternative names
	Description string         // Help text
	Handler     CommandHandler // Command handler function
}

// CommandRegistry manages command registration and routing
type CommandRegistry struct {
	commands map[string]*CommandConfig // command name -> config
	bot      Bot
	log      *logger.Logger
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(bot Bot, log *logger.Logger) *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[string]*CommandConfig),
		bot:      bot,
		log:      log.With("component", "command_registry"),
	}
}

// Register registers a command with the registry
func (cr *CommandRegistry) Register(config CommandConfig) {
	if config.Name == "" || config.Handler == nil {
		cr.log.Errorw("Cannot register invalid command", "name", config.Name)
		return
	}

	cr.commands[config.Name] = &config
	for _, alias := range config.Aliases {
		cr.commands[alias] = &config
	}

	cr.log.Debugw("Registered command",
		"name", config.Name,
		"aliases", config.Aliases,
	)
}

// HasCommand checks if command is registered
func (cr *CommandRegistry) HasCommand(command string) bool {
	command = strings.ToLower(strings.TrimSpace(command))
	_, exists := cr.commands[command]
	return exists
}

// Handle routes a command to its registered handler. Unknown commands are
// ignored silently so the bot stays quiet in group chats it shares with
// other bots.
func (cr *CommandRegistry) Handle(ctx context.Context, telegramID, chatID int64, command, args, rawMessage string) error {
	command = strings.ToLower(strings.TrimSpace(command))

	config, exists := cr.commands[command]
	if !exists {
		cr.log.Debugw("Unknown command ignored",
			"command", command,
			"telegram_id", telegramID,
		)
		return nil
	}

	cmdCtx := &CommandContext{
		Ctx:        ctx,
		TelegramID: telegramID,
		ChatID:     chatID,
		Command:    command,
		Args:       args,
		RawMessage: rawMessage,
		Bot:        cr.bot,
	}

	if err := config.Handler(cmdCtx); err != nil {
		cr.log.Errorw("Command execution failed",
			"command", command,
			"telegram_id", telegramID,
			"error", err,
		)
		return err
	}

	return nil
}
