package domain

// TurnRole identifies who produced a conversation turn.
type TurnRole string

const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// ConversationTurn is one utterance in a chat session. Turns are ephemeral:
// they live in the session store and are not persisted across restarts.
// Seq is a per-session logical timestamp.
type ConversationTurn struct {
	Role TurnRole
	Text string
	Seq  int
}
