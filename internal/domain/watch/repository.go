package watch

import "context"

// Registry is the keyed store of watch entries, scoped by (chat, mint).
// Implementations must be safe for concurrent use from independently
// handled updates and must not leak state between keys. The contract is
// eviction-agnostic: an implementation may drop entries under a TTL or
// capacity policy, and callers treat a miss as "watch expired or never
// existed".
type Registry interface {
	// PutIfAbsent stores the entry unless the key already holds one and
	// reports whether the entry was stored. Creation is first-writer-wins:
	// concurrent detections of one (chat, mint) must agree on a single
	// entry, so the baseline pinned at first detection is never reset.
	PutIfAbsent(chatID int64, mint string, entry *Entry) bool
	Get(chatID int64, mint string) (*Entry, bool)
}

// MarketDataClient fetches a market snapshot for a mint. One call is one
// attempt; retries are the user's button press, never the client's.
type MarketDataClient interface {
	TokenSnapshot(ctx context.Context, mint string) (*MarketSnapshot, error)
}
