// Package noop provides the tracker used when error tracking is disabled.
package noop

import (
	"context"
)

// Tracker discards everything. Used when no Sentry DSN is configured and in
// tests.
type Tracker struct{}

// New creates a new no-op tracker
func New() *Tracker {
	return &Tracker{}
}

// CaptureError does nothing
func (t *Tracker) CaptureError(ctx context.Context, err error, tags map[string]string) error {
	return nil
}

// Flush does nothing
func (t *Tracker) Flush(ctx context.Context) error {
	return nil
}
