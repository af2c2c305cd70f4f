package errors

import (
	"context"
)

// Tracker reports errors to an external tracking service. The logger feeds
// it captured errors; main flushes it on shutdown. Implementations live in
// internal/adapters/errors.
type Tracker interface {
	// CaptureError sends an error to the tracking service
	CaptureError(ctx context.Context, err error, tags map[string]string) error

	// Flush waits for all pending events to be sent
	Flush(ctx context.Context) error
}
