package chat

import (
	"context"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

// Gate bounds concurrent access to the generation and synthesis backends.
// Up to slots requests run at once, up to queueDepth more wait for a slot,
// and anything beyond that is rejected immediately so callers can tell the
// user to retry instead of piling up.
type Gate struct {
	slots   chan struct{}
	waiters chan struct{}
}

// NewGate creates a gate with the given slot count and wait-queue depth.
func NewGate(slots, queueDepth int) *Gate {
	if slots <= 0 {
		slots = 1
	}
	if queueDepth < 0 {
		queueDepth = 0
	}
	return &Gate{
		slots: make(chan struct{}, slots),
		// Slot holders keep their waiter token, so capacity covers both.
		waiters: make(chan struct{}, slots+queueDepth),
	}
}

// Acquire claims a slot, waiting in the bounded queue if necessary. It
// returns a release function on success, domain.ErrPipelineBusy when the
// queue is full, or the context error if the caller gives up while queued.
func (g *Gate) Acquire(ctx context.Context) (func(), error) {
	select {
	case g.waiters <- struct{}{}:
	default:
		return nil, domain.ErrPipelineBusy
	}

	select {
	case g.slots <- struct{}{}:
		return func() {
			<-g.slots
			<-g.waiters
		}, nil
	case <-ctx.Done():
		<-g.waiters
		return nil, ctx.Err()
	}
}
