package memory

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock returns the current time. Stores call it once per created record.
type Clock func() time.Time

type options struct {
	clock  Clock
	logger *slog.Logger
}

// Option configures an in-memory store.
type Option func(*options)

// WithClock overrides the time source used for created_at.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger sets the logger used when the request context carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{clock: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// arena holds records keyed by identifier and remembers insertion order.
// Creation times never go backwards, even if the clock does.
type arena[T any] struct {
	mu    sync.RWMutex
	clock Clock
	last  time.Time
	items map[uuid.UUID]T
	order []uuid.UUID
}

func newArena[T any](clock Clock) *arena[T] {
	return &arena[T]{
		clock: clock,
		items: make(map[uuid.UUID]T),
	}
}

// insert assigns a fresh identifier and creation time and stores the record
// built from them.
func (a *arena[T]) insert(build func(id uuid.UUID, createdAt time.Time) T) T {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := uuid.New()
	for _, taken := a.items[id]; taken; _, taken = a.items[id] {
		id = uuid.New()
	}

	createdAt := a.clock().UTC()
	if createdAt.Before(a.last) {
		createdAt = a.last
	}
	a.last = createdAt

	item := build(id, createdAt)
	a.items[id] = item
	a.order = append(a.order, id)
	return item
}

// remove deletes the record with the given identifier and reports whether it
// existed.
func (a *arena[T]) remove(id uuid.UUID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.items[id]; !ok {
		return false
	}
	delete(a.items, id)
	if i := slices.Index(a.order, id); i >= 0 {
		a.order = slices.Delete(a.order, i, i+1)
	}
	return true
}

// snapshot returns the records accepted by keep, in insertion order. A nil
// keep accepts everything. The result is never nil.
func (a *arena[T]) snapshot(keep func(T) bool) []T {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]T, 0, len(a.order))
	for _, id := range a.order {
		item := a.items[id]
		if keep == nil || keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (a *arena[T]) len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.items)
}
