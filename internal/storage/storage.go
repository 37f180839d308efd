// Package storage defines the persistence interface and its implementations.
package storage

import (
	"context"
	"time"
)

// Storage is the interface for the notified-posts cache, the durable record
// of posts already delivered to a chat. It guards against duplicate
// notifications when polling windows overlap across cycles.
type Storage interface {
	// MarkNotified records that postKey was delivered to chatID. Marking an
	// already recorded pair is a no-op.
	MarkNotified(ctx context.Context, chatID int64, postKey string) error

	// WasNotified reports whether postKey was already delivered to chatID.
	WasNotified(ctx context.Context, chatID int64, postKey string) (bool, error)

	// Prune removes records older than the given time and returns how many
	// were deleted.
	Prune(ctx context.Context, olderThan time.Time) (int64, error)

	Close() error
}
