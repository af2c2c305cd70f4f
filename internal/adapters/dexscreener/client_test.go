package dexscreener

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
	"schemaVersion": "1.0.0",
	"pairs": [
		{
			"chainId": "solana",
			"dexId": "raydium",
			"url": "https://dexscreener.com/solana/pair1",
			"baseToken": {"address": "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU", "name": "FOO", "symbol": "FOO"},
			"priceUsd": "0.005",
			"volume": {"m5": 1, "h1": 2, "h6": 3, "h24": 120000},
			"liquidity": {"usd": 80000, "base": 10, "quote": 20},
			"marketCap": 5000000
		},
		{
			"chainId": "solana",
			"dexId": "orca",
			"url": "https://dexscreener.com/solana/pair2",
			"baseToken": {"address": "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU", "name": "FOO", "symbol": "FOO"},
			"priceUsd": "0.004",
			"volume": {"h24": 1},
			"marketCap": 1
		}
	]
}`

func TestTokenResponseDecode(t *testing.T) {
	var body tokenResponse
	require.NoError(t, json.Unmarshal([]byte(samplePayload), &body))

	require.Len(t, body.Pairs, 2)
	assert.Equal(t, "raydium", body.Pairs[0].DexID)

	snap := body.Pairs[0].toSnapshot()
	require.NotNil(t, snap.PriceUsd)
	assert.True(t, snap.PriceUsd.Equal(decimal.RequireFromString("0.005")))
	assert.True(t, snap.MarketCapUsd.Equal(decimal.NewFromInt(5_000_000)))
	assert.True(t, snap.Volume24hUsd.Equal(decimal.NewFromInt(120_000)))
	assert.True(t, snap.LiquidityUsd.Equal(decimal.NewFromInt(80_000)))
	assert.Equal(t, "FOO", snap.Name)
	assert.Equal(t, "https://dexscreener.com/solana/pair1", snap.PairURL)
}

func TestToSnapshotHandlesMissingFields(t *testing.T) {
	p := &pairData{
		URL:       "https://dexscreener.com/solana/pair3",
		MarketCap: 0,
	}

	snap := p.toSnapshot()
	assert.Nil(t, snap.PriceUsd)
	assert.True(t, snap.LiquidityUsd.IsZero())
	assert.False(t, snap.HasValidMarketCap())
}

func TestToSnapshotIgnoresUnparsablePrice(t *testing.T) {
	p := &pairData{PriceUsd: "not-a-number", MarketCap: 10}

	snap := p.toSnapshot()
	assert.Nil(t, snap.PriceUsd)
	assert.True(t, snap.HasValidMarketCap())
}
