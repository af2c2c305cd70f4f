package watch

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"tokenwatch/pkg/format"
	"tokenwatch/pkg/telegram"
)

// refreshPrefix is the callback payload prefix; the mint after it is enough
// to recover the watch entry (the chat id comes with the callback itself).
const refreshPrefix = "update_"

func refreshPayload(mint string) string {
	return refreshPrefix + mint
}

func parseRefreshPayload(data string) (string, bool) {
	if !strings.HasPrefix(data, refreshPrefix) {
		return "", false
	}
	mint := data[len(refreshPrefix):]
	if mint == "" {
		return "", false
	}
	return mint, true
}

// card carries everything the renderer needs. The renderer itself is pure:
// same card in, same bytes out.
type card struct {
	Mint       string
	Name       string
	PriceUsd   *decimal.Decimal
	Baseline   decimal.Decimal
	CurrentCap decimal.Decimal
	Volume24h  decimal.Decimal
	Liquidity  decimal.Decimal
	PairURL    string
}

var hundred = decimal.NewFromInt(100)

// percentChange computes the change of current against baseline, in percent.
// A zero baseline yields zero, never a division error.
func percentChange(current, baseline decimal.Decimal) decimal.Decimal {
	if !baseline.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(baseline).Div(baseline).Mul(hundred)
}

// decoration returns the cosmetic marker for a change. Stable on the zero
// boundary: zero counts as positive.
func decoration(change decimal.Decimal) string {
	if change.Sign() < 0 {
		return "❌"
	}
	return "✅"
}

// renderCard builds the message body and keyboard for a watch card.
func renderCard(c card) (string, telegram.InlineKeyboardMarkup) {
	change := percentChange(c.CurrentCap, c.Baseline)

	var b strings.Builder
	fmt.Fprintf(&b, "*Coin Name:* %s\n", c.Name)
	fmt.Fprintf(&b, "*CA:* `%s` [Copy](tg://sendMessage?text=%s)\n", c.Mint, c.Mint)
	fmt.Fprintf(&b, "📈 *Current Price:* %s\n", format.Price(c.PriceUsd))
	fmt.Fprintf(&b, "💰 *Market Cap (at call):* %s (%s %s)\n", format.Compact(c.Baseline), format.SignedPercent(change), decoration(change))
	fmt.Fprintf(&b, "💰 *Current Market Cap:* %s\n", format.Compact(c.CurrentCap))
	fmt.Fprintf(&b, "💰 *Volume (24h):* %s\n", format.Compact(c.Volume24h))
	fmt.Fprintf(&b, "💧 *Liquidity Pool:* %s\n", format.Compact(c.Liquidity))
	b.WriteString("Tap below to refresh:")

	pairURL := c.PairURL
	if pairURL == "" {
		pairURL = "https://dexscreener.com/solana/" + c.Mint
	}

	keyboard := telegram.NewInlineKeyboardMarkup(
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButtonURL("DexScreener", pairURL),
			telegram.NewInlineKeyboardButtonData("🔄 Refresh", refreshPayload(c.Mint)),
		),
	)

	return b.String(), keyboard
}

// buyLinksKeyboard builds the quick-buy deep links sent on detection.
func buyLinksKeyboard(mint string) telegram.InlineKeyboardMarkup {
	return telegram.NewInlineKeyboardMarkup(
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButtonURL("@SolTradingBot 🚀", "https://t.me/SolTradingBot?start="+mint),
		),
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButtonURL("BullX 🐂", "https://bullx.io/terminal?chainId=1399811149&address="+mint),
		),
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButtonURL("NeoBullX 🐂", "https://neo.bullx.io/?address="+mint),
		),
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButtonURL("Nova 🚀", "https://t.me/TradeonNovaBot?start="+mint),
		),
	)
}
