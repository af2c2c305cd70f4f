package watch

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMint = "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"

func TestRefreshPayloadRoundTrip(t *testing.T) {
	payload := refreshPayload(testMint)
	assert.Equal(t, "update_"+testMint, payload)

	mint, ok := parseRefreshPayload(payload)
	require.True(t, ok)
	assert.Equal(t, testMint, mint)
}

func TestParseRefreshPayloadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"prefix only", "update_"},
		{"wrong prefix", "refresh_" + testMint},
		{"unrelated", "menu:settings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := parseRefreshPayload(tt.data)
			assert.False(t, ok)
		})
	}
}

func TestPercentChange(t *testing.T) {
	five := decimal.NewFromInt(5_000_000)

	assert.True(t, percentChange(decimal.NewFromInt(7_500_000), five).Equal(decimal.NewFromInt(50)))
	assert.True(t, percentChange(decimal.NewFromInt(2_500_000), five).Equal(decimal.NewFromInt(-50)))
	assert.True(t, percentChange(five, five).IsZero())

	// Zero baseline never divides.
	assert.True(t, percentChange(decimal.NewFromInt(1_000_000), decimal.Zero).IsZero())
}

func TestDecoration(t *testing.T) {
	assert.Equal(t, "✅", decoration(decimal.Zero))
	assert.Equal(t, "✅", decoration(decimal.NewFromInt(50)))
	assert.Equal(t, "❌", decoration(decimal.NewFromInt(-1)))
}

func TestRenderCardInitialState(t *testing.T) {
	price := decimal.RequireFromString("0.005")
	body, keyboard := renderCard(card{
		Mint:       testMint,
		Name:       "FOO",
		PriceUsd:   &price,
		Baseline:   decimal.NewFromInt(5_000_000),
		CurrentCap: decimal.NewFromInt(5_000_000),
		Volume24h:  decimal.NewFromInt(120_000),
		Liquidity:  decimal.NewFromInt(80_000),
		PairURL:    "https://dexscreener.com/solana/pair1",
	})

	assert.Contains(t, body, "*Coin Name:* FOO")
	assert.Contains(t, body, "`"+testMint+"`")
	assert.Contains(t, body, "tg://sendMessage?text="+testMint)
	assert.Contains(t, body, "*Current Price:* $0.005")
	assert.Contains(t, body, "*Market Cap (at call):* 5.00M (+0.00% ✅)")
	assert.Contains(t, body, "*Current Market Cap:* 5.00M")
	assert.Contains(t, body, "*Volume (24h):* 120.00K")
	assert.Contains(t, body, "*Liquidity Pool:* 80.00K")

	require.Len(t, keyboard.InlineKeyboard, 1)
	row := keyboard.InlineKeyboard[0]
	require.Len(t, row, 2)
	assert.Equal(t, "https://dexscreener.com/solana/pair1", row[0].URL)
	assert.Equal(t, "update_"+testMint, row[1].CallbackData)
}

func TestRenderCardAfterGrowth(t *testing.T) {
	body, _ := renderCard(card{
		Mint:       testMint,
		Name:       "FOO",
		Baseline:   decimal.NewFromInt(5_000_000),
		CurrentCap: decimal.NewFromInt(7_500_000),
		Volume24h:  decimal.NewFromInt(120_000),
		Liquidity:  decimal.NewFromInt(80_000),
	})

	assert.Contains(t, body, "*Market Cap (at call):* 5.00M (+50.00% ✅)")
	assert.Contains(t, body, "*Current Market Cap:* 7.50M")
}

func TestRenderCardNegativeChange(t *testing.T) {
	body, _ := renderCard(card{
		Mint:       testMint,
		Name:       "FOO",
		Baseline:   decimal.NewFromInt(5_000_000),
		CurrentCap: decimal.NewFromInt(2_500_000),
	})

	assert.Contains(t, body, "(-50.00% ❌)")
}

func TestRenderCardMissingPrice(t *testing.T) {
	body, _ := renderCard(card{
		Mint:       testMint,
		Name:       "FOO",
		Baseline:   decimal.NewFromInt(5_000_000),
		CurrentCap: decimal.NewFromInt(5_000_000),
	})

	assert.Contains(t, body, "*Current Price:* N/A")
}

func TestRenderCardFallbackPairURL(t *testing.T) {
	_, keyboard := renderCard(card{Mint: testMint, Name: "FOO"})

	require.Len(t, keyboard.InlineKeyboard, 1)
	assert.Equal(t, "https://dexscreener.com/solana/"+testMint, keyboard.InlineKeyboard[0][0].URL)
}

// Rendering is pure: identical inputs must produce byte-identical output, so
// an unchanged market state edits the message into itself.
func TestRenderCardDeterministic(t *testing.T) {
	c := card{
		Mint:       testMint,
		Name:       "FOO",
		Baseline:   decimal.NewFromInt(5_000_000),
		CurrentCap: decimal.NewFromInt(5_000_000),
		Volume24h:  decimal.NewFromInt(120_000),
		Liquidity:  decimal.NewFromInt(80_000),
	}

	first, _ := renderCard(c)
	second, _ := renderCard(c)
	assert.Equal(t, first, second)
}

func TestBuyLinksKeyboardEmbedsMint(t *testing.T) {
	keyboard := buyLinksKeyboard(testMint)

	require.Len(t, keyboard.InlineKeyboard, 4)
	for _, row := range keyboard.InlineKeyboard {
		require.Len(t, row, 1)
		assert.True(t, strings.HasSuffix(row[0].URL, testMint))
	}
}
