// Package format renders raw market magnitudes into the compact strings
// used in chat messages. All functions are pure.
package format

import (
	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
)

// Compact renders a USD magnitude in compact form:
// values >= 1M as "1.23M", values >= 1K as "1.23K", otherwise two decimals.
func Compact(v decimal.Decimal) string {
	switch {
	case v.GreaterThanOrEqual(million):
		return v.Div(million).StringFixed(2) + "M"
	case v.GreaterThanOrEqual(thousand):
		return v.Div(thousand).StringFixed(2) + "K"
	default:
		return v.StringFixed(2)
	}
}

// CompactPtr renders an optional magnitude, mapping absence to "N/A".
func CompactPtr(v *decimal.Decimal) string {
	if v == nil {
		return "N/A"
	}
	return Compact(*v)
}

// Price renders a USD price with the provider's own precision preserved.
// Absent prices map to "N/A".
func Price(v *decimal.Decimal) string {
	if v == nil {
		return "N/A"
	}
	return "$" + v.String()
}

// SignedPercent renders a percentage with an explicit sign and two decimals,
// e.g. "+50.00%" or "-12.34%".
func SignedPercent(v decimal.Decimal) string {
	s := v.StringFixed(2) + "%"
	if v.Sign() >= 0 {
		return "+" + s
	}
	return s
}
