package chat

import (
	"sync"
	"time"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

// HistoryStore keeps per-session conversation turns in memory. Sessions are
// bounded to the most recent turns and expire after an idle TTL; nothing
// survives a restart. A restarted service greets every caller fresh, which
// matches how the session ids themselves are handed out.
type HistoryStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	maxTurns int
	ttl      time.Duration
	now      func() time.Time
}

type session struct {
	turns    []domain.ConversationTurn
	seq      int
	lastSeen time.Time
}

// NewHistoryStore creates a store keeping at most maxTurns per session,
// evicting sessions idle longer than ttl.
func NewHistoryStore(maxTurns int, ttl time.Duration) *HistoryStore {
	if maxTurns <= 0 {
		maxTurns = 12
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &HistoryStore{
		sessions: make(map[string]*session),
		maxTurns: maxTurns,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Append records one turn for the session, trimming the oldest turns beyond
// the bound.
func (h *HistoryStore) Append(sessionID string, role domain.TurnRole, text string) {
	if sessionID == "" || text == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.sessions[sessionID]
	if s == nil || h.expired(s) {
		s = &session{}
		h.sessions[sessionID] = s
	}

	s.seq++
	s.turns = append(s.turns, domain.ConversationTurn{Role: role, Text: text, Seq: s.seq})
	if len(s.turns) > h.maxTurns {
		s.turns = s.turns[len(s.turns)-h.maxTurns:]
	}
	s.lastSeen = h.now()
}

// Turns returns a copy of the session's recent turns, oldest first. Expired
// sessions read as empty.
func (h *HistoryStore) Turns(sessionID string) []domain.ConversationTurn {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := h.sessions[sessionID]
	if s == nil {
		return nil
	}
	if h.expired(s) {
		delete(h.sessions, sessionID)
		return nil
	}

	out := make([]domain.ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Sweep drops every expired session and reports how many were removed.
func (h *HistoryStore) Sweep() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := 0
	for id, s := range h.sessions {
		if h.expired(s) {
			delete(h.sessions, id)
			removed++
		}
	}
	return removed
}

func (h *HistoryStore) expired(s *session) bool {
	return h.now().Sub(s.lastSeen) > h.ttl
}
