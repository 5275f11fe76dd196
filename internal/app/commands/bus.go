package commands

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryBus is a map-backed command bus. Handlers are registered during
// wiring; dispatch is read-only afterwards.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string]func(ctx context.Context, cmd Command) (any, error)
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{handlers: make(map[string]func(ctx context.Context, cmd Command) (any, error))}
}

// RegisterHandler binds a typed handler to a command key.
func RegisterHandler[C Command, R any](bus *InMemoryBus, key string, h Handler[C, R]) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[key] = func(ctx context.Context, cmd Command) (any, error) {
		typed, ok := cmd.(C)
		if !ok {
			return nil, fmt.Errorf("%w: key %q", ErrInvalidCommand, key)
		}
		return h.Handle(ctx, typed)
	}
}

// Dispatch routes cmd to the handler registered for its key.
func (b *InMemoryBus) Dispatch(ctx context.Context, cmd Command) (any, error) {
	b.mu.RLock()
	h, ok := b.handlers[cmd.Key()]
	b.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: key %q", ErrHandlerNotFound, cmd.Key())
	}
	return h(ctx, cmd)
}
