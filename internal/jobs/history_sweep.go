package jobs

import (
	"context"
	"log"
)

// SessionSweeper drops expired conversation sessions so idle history does
// not accumulate between chats.
type SessionSweeper interface {
	Sweep() int
}

// HistorySweep adapts a session sweeper to the worker loop.
type HistorySweep struct {
	store SessionSweeper
}

func NewHistorySweep(store SessionSweeper) *HistorySweep {
	return &HistorySweep{store: store}
}

func (h *HistorySweep) ProcessJobs(_ context.Context) error {
	if removed := h.store.Sweep(); removed > 0 {
		log.Printf("history sweep: evicted %d idle sessions", removed)
	}
	return nil
}
