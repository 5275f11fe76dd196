package queries

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryBus is a map-backed query bus.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string]func(ctx context.Context, q Query) (any, error)
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{handlers: make(map[string]func(ctx context.Context, q Query) (any, error))}
}

// RegisterHandler binds a typed handler to a query key.
func RegisterHandler[Q Query, R any](bus *InMemoryBus, key string, h Handler[Q, R]) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[key] = func(ctx context.Context, q Query) (any, error) {
		typed, ok := q.(Q)
		if !ok {
			return nil, fmt.Errorf("%w: key %q", ErrInvalidQuery, key)
		}
		return h.Handle(ctx, typed)
	}
}

// Ask routes q to the handler registered for its key.
func (b *InMemoryBus) Ask(ctx context.Context, q Query) (any, error) {
	b.mu.RLock()
	h, ok := b.handlers[q.Key()]
	b.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: key %q", ErrHandlerNotFound, q.Key())
	}
	return h(ctx, q)
}
