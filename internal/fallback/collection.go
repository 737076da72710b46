package fallback

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Collection is a typed view over one stored collection. All mutations follow
// the same read-modify-persist sequence; a mutex serializes them so two
// concurrent dashboard requests cannot lose each other's writes.
type Collection[T any] struct {
	store Store
	name  string
	idOf  func(T) int64

	mu sync.Mutex
}

// NewCollection creates a typed collection over the store. idOf extracts the
// record identifier used by ReplaceByID, Upsert and RemoveByID.
func NewCollection[T any](store Store, name string, idOf func(T) int64) *Collection[T] {
	return &Collection[T]{store: store, name: name, idOf: idOf}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// All returns the persisted records in their stored order, or an empty slice
// if nothing has been persisted yet.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Replace persists the given records as the full collection contents.
func (c *Collection[T]) Replace(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, records)
}

// Append adds a record to the end of the collection.
func (c *Collection[T]) Append(ctx context.Context, record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	return c.save(ctx, append(records, record))
}

// ReplaceByID replaces the first record whose ID matches, in place.
// Returns ErrRecordNotFound if no record matches.
func (c *Collection[T]) ReplaceByID(ctx context.Context, id int64, record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if c.idOf(records[i]) == id {
			records[i] = record
			return c.save(ctx, records)
		}
	}
	return ErrRecordNotFound
}

// Upsert replaces the record with the given ID, or appends it when absent.
func (c *Collection[T]) Upsert(ctx context.Context, id int64, record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if c.idOf(records[i]) == id {
			records[i] = record
			return c.save(ctx, records)
		}
	}
	return c.save(ctx, append(records, record))
}

// RemoveByID filters out records with the given ID and persists the result
// if and only if something was removed. Reports whether a removal occurred.
func (c *Collection[T]) RemoveByID(ctx context.Context, id int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load(ctx)
	if err != nil {
		return false, err
	}

	kept := records[:0]
	for _, r := range records {
		if c.idOf(r) != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}
	if err := c.save(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// load reads and decodes the collection. Callers must hold c.mu.
func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	payload, err := c.store.Load(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("load collection %q: %w", c.name, err)
	}
	if len(payload) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode collection %q: %w", c.name, err)
	}
	return records, nil
}

// save encodes and persists the collection. Callers must hold c.mu.
func (c *Collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection %q: %w", c.name, err)
	}
	if err := c.store.Save(ctx, c.name, payload); err != nil {
		return fmt.Errorf("save collection %q: %w", c.name, err)
	}
	return nil
}
