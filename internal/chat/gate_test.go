package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

func TestGate_SlotsAndRelease(t *testing.T) {
	g := NewGate(1, 0)

	release, err := g.Acquire(context.Background())
	require.NoError(t, err)

	_, err = g.Acquire(context.Background())
	assert.Equal(t, domain.ErrPipelineBusy, err)

	release()

	release, err = g.Acquire(context.Background())
	require.NoError(t, err)
	release()
}

func TestGate_QueueAdmitsThenRejects(t *testing.T) {
	g := NewGate(1, 1)

	holder, err := g.Acquire(context.Background())
	require.NoError(t, err)

	queued := make(chan error, 1)
	go func() {
		release, err := g.Acquire(context.Background())
		if err == nil {
			defer release()
		}
		queued <- err
	}()

	// Give the goroutine time to occupy the single queue position.
	time.Sleep(50 * time.Millisecond)

	_, err = g.Acquire(context.Background())
	assert.Equal(t, domain.ErrPipelineBusy, err)

	holder()
	assert.NoError(t, <-queued)
}

func TestGate_ContextCancelWhileQueued(t *testing.T) {
	g := NewGate(1, 1)

	holder, err := g.Acquire(context.Background())
	require.NoError(t, err)
	defer holder()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = g.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The abandoned queue position is freed for the next waiter.
	ctx2, cancel2 := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel2()
	_, err = g.Acquire(ctx2)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
