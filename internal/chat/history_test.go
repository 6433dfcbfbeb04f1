package chat

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

func TestHistory_AppendAndTurns(t *testing.T) {
	h := NewHistoryStore(12, time.Minute)

	h.Append("s1", domain.RoleUser, "hello")
	h.Append("s1", domain.RoleAssistant, "hi, how can I help?")
	h.Append("s2", domain.RoleUser, "unrelated")

	turns := h.Turns("s1")
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "hello", turns[0].Text)
	assert.Less(t, turns[0].Seq, turns[1].Seq)

	assert.Len(t, h.Turns("s2"), 1)
	assert.Empty(t, h.Turns("unknown"))
}

func TestHistory_BoundDropsOldestFirst(t *testing.T) {
	h := NewHistoryStore(3, time.Minute)

	for i := 1; i <= 5; i++ {
		h.Append("s1", domain.RoleUser, fmt.Sprintf("turn %d", i))
	}

	turns := h.Turns("s1")
	require.Len(t, turns, 3)
	assert.Equal(t, "turn 3", turns[0].Text)
	assert.Equal(t, "turn 5", turns[2].Text)
}

func TestHistory_TTLEviction(t *testing.T) {
	h := NewHistoryStore(12, 10*time.Minute)
	clock := time.Now()
	h.now = func() time.Time { return clock }

	h.Append("s1", domain.RoleUser, "hello")
	assert.Len(t, h.Turns("s1"), 1)

	clock = clock.Add(11 * time.Minute)
	assert.Empty(t, h.Turns("s1"))
}

func TestHistory_SweepRemovesExpiredOnly(t *testing.T) {
	h := NewHistoryStore(12, 10*time.Minute)
	clock := time.Now()
	h.now = func() time.Time { return clock }

	h.Append("old", domain.RoleUser, "stale")
	clock = clock.Add(11 * time.Minute)
	h.Append("fresh", domain.RoleUser, "recent")

	assert.Equal(t, 1, h.Sweep())
	assert.Empty(t, h.Turns("old"))
	assert.Len(t, h.Turns("fresh"), 1)
}

func TestHistory_TurnsReturnsCopy(t *testing.T) {
	h := NewHistoryStore(12, time.Minute)
	h.Append("s1", domain.RoleUser, "original")

	turns := h.Turns("s1")
	turns[0].Text = "mutated"

	assert.Equal(t, "original", h.Turns("s1")[0].Text)
}
