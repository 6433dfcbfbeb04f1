// Package jobs runs the periodic maintenance sweeps: expiring synthesized
// audio artifacts and evicting idle conversation histories.
package jobs

import (
	"context"
	"log"
	"time"
)

// JobProcessor is one sweep pass. Implementations must be safe to call
// repeatedly; a failed pass is logged and retried on the next tick.
type JobProcessor interface {
	ProcessJobs(ctx context.Context) error
}

// Worker drives a JobProcessor on a fixed tick until stopped.
type Worker struct {
	processor    JobProcessor
	pollInterval time.Duration
	stopChan     chan struct{}
	doneChan     chan struct{}
}

// NewWorker wraps a processor with a ticker loop.
func NewWorker(processor JobProcessor, pollInterval time.Duration) *Worker {
	return &Worker{
		processor:    processor,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
		doneChan:     make(chan struct{}),
	}
}

// Start runs the sweep loop. It blocks until the context is cancelled or
// Stop is called, so run it in its own goroutine.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	defer close(w.doneChan)

	log.Printf("sweep worker started (interval %v)", w.pollInterval)

	for {
		select {
		case <-ctx.Done():
			log.Println("sweep worker stopped: context cancelled")
			return
		case <-w.stopChan:
			log.Println("sweep worker stopped")
			return
		case <-ticker.C:
			if err := w.processor.ProcessJobs(ctx); err != nil {
				log.Printf("sweep pass failed: %v", err)
			}
		}
	}
}

// Stop signals the loop to exit and waits for the in-flight pass to finish.
func (w *Worker) Stop() {
	close(w.stopChan)
	<-w.doneChan
}
