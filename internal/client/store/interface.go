// Package store is the persistent client-side key/value state: credentials,
// per-subject carts, the order recovery slot, and assorted flags. It is the
// Go rendition of the browser's localStorage the rest of the client builds
// on.
package store

import "context"

// Store is a flat key/value store. Get returns (nil, nil) for a missing
// key; callers treat a nil value as "absent".
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
