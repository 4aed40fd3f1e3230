// Package inflight rejects a second operation on a key while the first is still running.
// Callers that lose the race are expected to drop the request, not queue it.
package inflight

import (
	"context"
	"sync"
)

// Guard hands out at most one live claim per key.
type Guard interface {
	// Acquire returns ok=false when the key is already claimed.
	// release must be called exactly once when ok is true.
	Acquire(ctx context.Context, key string) (release func(), ok bool, err error)
}

// MemoryGuard is a process-local Guard.
type MemoryGuard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{busy: make(map[string]struct{})}
}

func (g *MemoryGuard) Acquire(_ context.Context, key string) (func(), bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, taken := g.busy[key]; taken {
		return nil, false, nil
	}
	g.busy[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, key)
			g.mu.Unlock()
		})
	}, true, nil
}

var _ Guard = (*MemoryGuard)(nil)
