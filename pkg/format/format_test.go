package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCompact_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		value    int64
		expected string
	}{
		{"just below thousand", 999, "999.00"},
		{"exactly thousand", 1000, "1.00K"},
		{"just below million", 999999, "1000.00K"},
		{"exactly million", 1000000, "1.00M"},
		{"zero", 0, "0.00"},
		{"small", 42, "42.00"},
		{"mid thousands", 1500, "1.50K"},
		{"five million", 5000000, "5.00M"},
		{"seven and a half million", 7500000, "7.50M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compact(decimal.NewFromInt(tt.value)))
		})
	}
}

func TestCompact_Fractional(t *testing.T) {
	assert.Equal(t, "0.50", Compact(decimal.NewFromFloat(0.5)))
	assert.Equal(t, "1.23M", Compact(decimal.NewFromInt(1_234_567)))
	assert.Equal(t, "200.00K", Compact(decimal.NewFromInt(200_000)))
}

func TestCompactPtr(t *testing.T) {
	assert.Equal(t, "N/A", CompactPtr(nil))

	v := decimal.NewFromInt(1500000)
	assert.Equal(t, "1.50M", CompactPtr(&v))
}

func TestPrice(t *testing.T) {
	assert.Equal(t, "N/A", Price(nil))

	v := decimal.NewFromFloat(1.23)
	assert.Equal(t, "$1.23", Price(&v))

	// Provider precision is preserved, not rounded
	small := decimal.RequireFromString("0.000004513")
	assert.Equal(t, "$0.000004513", Price(&small))
}

func TestSignedPercent(t *testing.T) {
	assert.Equal(t, "+0.00%", SignedPercent(decimal.Zero))
	assert.Equal(t, "+50.00%", SignedPercent(decimal.NewFromInt(50)))
	assert.Equal(t, "-12.34%", SignedPercent(decimal.NewFromFloat(-12.34)))
}
