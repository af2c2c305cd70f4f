// Package memory provides the in-process watch registry. Nothing here
// survives a restart, by design.
package memory

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"tokenwatch/internal/domain/watch"
)

// WatchRegistry is a go-cache backed watch.Registry. Entries are keyed by
// the composite (chat, mint) key. A zero TTL keeps entries for the life of
// the process; a positive TTL bounds growth on long uptimes without any
// change to callers.
type WatchRegistry struct {
	cache *gocache.Cache
}

// NewWatchRegistry creates a registry with the given entry TTL (0 = never
// expire).
func NewWatchRegistry(ttl time.Duration) *WatchRegistry {
	expiration := gocache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		expiration = ttl
		cleanup = ttl
	}
	return &WatchRegistry{
		cache: gocache.New(expiration, cleanup),
	}
}

// PutIfAbsent stores the entry under its (chat, mint) key unless one is
// already there. go-cache's Add is atomic under the cache lock, so of two
// racing detections exactly one claims the key.
func (r *WatchRegistry) PutIfAbsent(chatID int64, mint string, entry *watch.Entry) bool {
	return r.cache.Add(key(chatID, mint), entry, gocache.DefaultExpiration) == nil
}

// Get returns the entry for the (chat, mint) key, if present.
func (r *WatchRegistry) Get(chatID int64, mint string) (*watch.Entry, bool) {
	v, ok := r.cache.Get(key(chatID, mint))
	if !ok {
		return nil, false
	}
	return v.(*watch.Entry), true
}

func key(chatID int64, mint string) string {
	return fmt.Sprintf("%d:%s", chatID, mint)
}

var _ watch.Registry = (*WatchRegistry)(nil)
