// Package concurrency provides a permit gate for bounding concurrent work,
// such as outbound SMTP sends.
package concurrency

import (
	"context"
	"sync"

	"github.com/bizgrid/backend/internal/domain/shared"
	"golang.org/x/sync/semaphore"
)

// Gate bounds concurrent access to a scarce resource with a fixed number
// of permits. Acquire blocks until a permit frees up or the context ends.
type Gate struct {
	sem      *semaphore.Weighted
	capacity int64
}

// NewGate creates a gate with the given permit capacity
func NewGate(capacity int) (*Gate, error) {
	if capacity <= 0 {
		return nil, shared.NewDomainError("INVALID_GATE_CAPACITY", "gate capacity must be positive")
	}
	return &Gate{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: int64(capacity),
	}, nil
}

// Capacity returns the total number of permits
func (g *Gate) Capacity() int {
	return int(g.capacity)
}

// Acquire blocks until a permit is available. The returned permit must be
// released by the caller; releasing it more than once is a no-op.
func (g *Gate) Acquire(ctx context.Context) (*Permit, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return &Permit{gate: g}, nil
}

// TryAcquire takes a permit without blocking, returning nil when none is free
func (g *Gate) TryAcquire() *Permit {
	if !g.sem.TryAcquire(1) {
		return nil
	}
	return &Permit{gate: g}
}

// Permit is a single acquired slot in a gate
type Permit struct {
	gate *Gate
	once sync.Once
}

// Release returns the permit to the gate. Safe to call multiple times;
// only the first call has an effect.
func (p *Permit) Release() {
	p.once.Do(func() {
		p.gate.sem.Release(1)
	})
}
