package watch

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MessageLocation holds the transport coordinates of the card message an
// entry keeps updated. Write-once at entry creation.
type MessageLocation struct {
	ChatID    int64
	MessageID int
}

// MarketSnapshot is one point-in-time read of a token's market attributes.
// PriceUsd is nil when the provider omits it. Snapshots are transient and
// never stored beyond the computation that produced them.
type MarketSnapshot struct {
	PriceUsd     *decimal.Decimal
	MarketCapUsd decimal.Decimal
	LiquidityUsd decimal.Decimal
	Volume24hUsd decimal.Decimal
	Name         string
	Symbol       string
	PairURL      string
}

// HasValidMarketCap reports whether the snapshot carries a usable market cap.
// Zero or negative caps are invalid-but-present: they must never overwrite a
// previously recorded good value.
func (s *MarketSnapshot) HasValidMarketCap() bool {
	return s.MarketCapUsd.IsPositive()
}

// Entry is the per-(chat, mint) unit of state behind a live card.
// The baseline market cap is write-once: the first positive cap observed is
// pinned for the entry's lifetime and every percent change is computed
// against it.
type Entry struct {
	ID        uuid.UUID
	Mint      string
	Location  MessageLocation
	Name      string
	Symbol    string
	PairURL   string
	CreatedAt time.Time

	mu       sync.Mutex
	baseline decimal.Decimal
	lastGood decimal.Decimal
}

// NewEntry creates an entry from the first snapshot. An invalid first cap
// leaves the baseline at zero; the first valid observation promotes it.
func NewEntry(mint string, snap *MarketSnapshot, loc MessageLocation) *Entry {
	e := &Entry{
		ID:        uuid.New(),
		Mint:      mint,
		Location:  loc,
		Name:      snap.Name,
		Symbol:    snap.Symbol,
		PairURL:   snap.PairURL,
		CreatedAt: time.Now(),
	}
	if snap.HasValidMarketCap() {
		e.baseline = snap.MarketCapUsd
		e.lastGood = snap.MarketCapUsd
	}
	return e
}

// Baseline returns the pinned baseline market cap (zero until the first
// valid observation).
func (e *Entry) Baseline() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.baseline
}

// Observe records a snapshot's market cap and returns the effective value to
// render. A valid cap becomes the new last-known-good value and, if the
// baseline is still unset, the baseline. An invalid cap is discarded and the
// last-known-good value is carried forward; valid=false signals the caller
// to log the anomaly.
func (e *Entry) Observe(snap *MarketSnapshot) (effective decimal.Decimal, valid bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if snap.HasValidMarketCap() {
		e.lastGood = snap.MarketCapUsd
		if !e.baseline.IsPositive() {
			e.baseline = snap.MarketCapUsd
		}
		return snap.MarketCapUsd, true
	}

	return e.lastGood, false
}
