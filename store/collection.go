package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Record is anything stored in a collection; ids are compared as strings.
type Record interface {
	GetID() string
}

// Collection is a typed view over one storage key. The whole collection is
// read and re-written on every mutation.
type Collection[T Record] struct {
	kv      KV
	key     string
	prepend bool
	seed    func() []T

	// mu serializes read-modify-write within this process only.
	mu sync.Mutex
}

func newCollection[T Record](kv KV, key string, prepend bool, seed func() []T) *Collection[T] {
	return &Collection[T]{kv: kv, key: key, prepend: prepend, seed: seed}
}

// Key returns the storage key backing the collection
func (c *Collection[T]) Key() string { return c.key }

// GetAll returns every stored record. Missing, unreadable and corrupt data all
// come back as the empty (or seeded) collection.
func (c *Collection[T]) GetAll(ctx context.Context) []T {
	raw, ok, err := c.kv.Get(ctx, c.key)
	if err != nil {
		logrus.WithError(err).WithField("key", c.key).Error("record store read failed")
		return c.fallback()
	}
	if !ok {
		return c.fallback()
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		logrus.WithError(err).WithField("key", c.key).Warn("corrupt collection treated as empty")
		return c.fallback()
	}
	if items == nil {
		items = []T{}
	}
	return items
}

func (c *Collection[T]) fallback() []T {
	if c.seed != nil {
		return c.seed()
	}
	return []T{}
}

// Save upserts by id: an existing record is replaced in place, otherwise the
// item is added (appended, or prepended for newest-first collections).
func (c *Collection[T]) Save(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.GetAll(ctx)
	if idx := indexOf(items, item.GetID()); idx != -1 {
		items[idx] = item
	} else if c.prepend {
		items = append([]T{item}, items...)
	} else {
		items = append(items, item)
	}
	return c.write(ctx, items)
}

// Append adds the item without looking for an existing id.
func (c *Collection[T]) Append(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(ctx, append(c.GetAll(ctx), item))
}

// Update replaces an existing record and reports whether one was found.
// Unknown ids leave the collection untouched.
func (c *Collection[T]) Update(ctx context.Context, item T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.GetAll(ctx)
	idx := indexOf(items, item.GetID())
	if idx == -1 {
		return false, nil
	}
	items[idx] = item
	return true, c.write(ctx, items)
}

// Remove deletes the record with the given id, if present.
func (c *Collection[T]) Remove(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.GetAll(ctx)
	idx := indexOf(items, id)
	if idx == -1 {
		return false, nil
	}
	items = append(items[:idx], items[idx+1:]...)
	return true, c.write(ctx, items)
}

// Replace overwrites the whole collection.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if items == nil {
		items = []T{}
	}
	return c.write(ctx, items)
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, bool) {
	return c.Find(ctx, func(item T) bool { return item.GetID() == id })
}

func (c *Collection[T]) Find(ctx context.Context, match func(T) bool) (T, bool) {
	for _, item := range c.GetAll(ctx) {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Filter(ctx context.Context, match func(T) bool) []T {
	out := []T{}
	for _, item := range c.GetAll(ctx) {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Collection[T]) write(ctx context.Context, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, c.key, raw)
}

func indexOf[T Record](items []T, id string) int {
	for i, item := range items {
		if item.GetID() == id {
			return i
		}
	}
	return -1
}
