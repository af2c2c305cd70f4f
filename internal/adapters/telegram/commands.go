package telegram

import (
	"context"

	"github.com/shopspring/decimal"

	"tokenwatch/pkg/errors"
	"tokenwatch/pkg/logger"
	"tokenwatch/pkg/telegram"
)

// PriceFeed defines the native-asset price lookup used by /solana.
type PriceFeed interface {
	SolPrice(ctx context.Context) (decimal.Decimal, error)
}

// RegisterCommands wires all bot commands into the registry.
func RegisterCommands(registry *telegram.CommandRegistry, priceFeed PriceFeed, log *logger.Logger) {
	log = log.With("component", "telegram_commands")

	registry.Register(telegram.CommandConfig{
		Name:        "start",
		Description: "Show what the bot does",
		Handler: func(cmd *telegram.CommandContext) error {
			text := "👋 Drop a Solana contract address in the chat and I'll post a live market card for it.\n" +
				"Press 🔄 Refresh on a card to update it in place.\n" +
				"Use /solana for the current SOL price."
			return cmd.Bot.SendMessage(cmd.ChatID, text)
		},
	})

	registry.Register(telegram.CommandConfig{
		Name:        "solana",
		Aliases:     []string{"sol"},
		Description: "Current SOL price in USD",
		Handler: func(cmd *telegram.CommandContext) error {
			price, err := priceFeed.SolPrice(cmd.Ctx)
			if err != nil {
				log.Warnw("SOL price lookup failed", "error", err)
				if sendErr := cmd.Bot.SendMessage(cmd.ChatID, "❌ Could not fetch the Solana price right now. Try again later."); sendErr != nil {
					return errors.Wrap(sendErr, "failed to send price error reply")
				}
				return nil
			}

			return cmd.Bot.SendMessage(cmd.ChatID, "💎 *Solana price:* $"+price.StringFixed(2))
		},
	})
}
