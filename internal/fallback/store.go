// Package fallback provides the local durable cache used when the upstream
// storefront API is unreachable. Collections are stored whole: every mutation
// reads the full collection, rewrites it, and persists it back. That is a
// deliberate simplicity-over-throughput choice for small admin datasets.
package fallback

import (
	"context"
	"errors"
)

// Store persists JSON-serialized collections keyed by collection name.
// Implementations: SQLite (embedded, default) and PostgreSQL.
type Store interface {
	// Load returns the persisted payload for a collection.
	// A collection that has never been written yields (nil, nil);
	// absence of data is not an error.
	Load(ctx context.Context, collection string) ([]byte, error)

	// Save persists the full payload for a collection, replacing any
	// previous contents.
	Save(ctx context.Context, collection string, payload []byte) error

	// Collections lists the names of all persisted collections.
	Collections(ctx context.Context) ([]string, error)

	// Clear removes a collection entirely.
	Clear(ctx context.Context, collection string) error

	// Close releases the underlying storage handle.
	Close() error
}

// ErrRecordNotFound indicates a ReplaceByID or merge targeted an ID that is
// not present in the collection. It is an operation failure, never fatal.
var ErrRecordNotFound = errors.New("fallback record not found")
