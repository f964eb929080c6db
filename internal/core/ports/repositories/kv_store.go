package repositories

import "context"

// KeyValueStore is the durable local store holding drafts and the visibility
// mask. Values are opaque strings.
type KeyValueStore interface {
	// Get returns the value of key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
