package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

const systemPrompt = `You are Sahayatha, a helpful assistant for citizens of the municipal corporation.
Answer questions about government services, certificates, schemes, bills, and complaints.
Use ONLY the reference material between the markers below. If the reference material
mentions a helpline number for the service in question, include it in your answer.
Keep answers short, polite, and practical.`

const refusalReply = "I don't have information about that in my records. Please contact your local municipal office or call the citizen helpline for assistance."

const ungroundedCaveat = `No reference material matched this question. Answer from general knowledge
about Indian municipal services, say clearly that the citizen should verify with their
local office, and do not invent specific numbers, fees, or helplines.`

// FallbackRefuse and FallbackAnswer are the two zero-chunk generation policies.
const (
	FallbackRefuse = "refuse"
	FallbackAnswer = "answer"
)

// Completer runs a chat completion over prepared messages.
type Completer interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage, temperature float32) (string, error)
}

// TicketLookup resolves a public ticket id read-only.
type TicketLookup interface {
	GetByPublicID(ctx context.Context, publicID string) (*domain.Ticket, error)
}

// Result is one generated answer, either plain text or a structured bill.
type Result struct {
	Kind  domain.ResponseKind
	Reply string
	Bill  *domain.BillView
}

// Config tunes the generator.
type Config struct {
	Fallback    string
	Timeout     time.Duration
	Temperature float32
}

// Generator produces answers: deterministic intents first, grounded
// generation second.
type Generator struct {
	matcher   *Matcher
	tickets   TicketLookup
	completer Completer
	cfg       Config
}

// New creates a generator. tickets may be nil when no ticket store is wired;
// ticket-id queries then get the deterministic not-found reply.
func New(matcher *Matcher, tickets TicketLookup, completer Completer, cfg Config) *Generator {
	if cfg.Fallback == "" {
		cfg.Fallback = FallbackRefuse
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Generator{matcher: matcher, tickets: tickets, completer: completer, cfg: cfg}
}

// Generate answers the query. Intent hits never touch the language model.
// The returned error is only ever a generation failure; callers substitute
// a static apology and must not leak it to the client.
func (g *Generator) Generate(ctx context.Context, query string, chunks []domain.RetrievedChunk, history []domain.ConversationTurn, targetLanguage string) (Result, error) {
	if g.matcher != nil {
		if intent := g.matcher.Match(query); intent != nil {
			return g.resolveIntent(ctx, intent), nil
		}
	}

	if len(chunks) == 0 && g.cfg.Fallback == FallbackRefuse {
		return Result{Kind: domain.KindText, Reply: refusalReply}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	reply, err := g.completer.Complete(ctx, g.buildMessages(query, chunks, history, targetLanguage), g.cfg.Temperature)
	if err != nil {
		return Result{}, domain.NewDomainErrorWithCause(domain.ErrCodeUnavailable, "answer generation failed", err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return Result{}, domain.ErrGenerationFailed
	}

	return Result{Kind: domain.KindText, Reply: reply}, nil
}

func (g *Generator) resolveIntent(ctx context.Context, intent *Intent) Result {
	if intent.Bill != nil {
		return Result{Kind: domain.KindStructuredBill, Bill: intent.Bill}
	}

	if g.tickets != nil {
		ticket, err := g.tickets.GetByPublicID(ctx, intent.TicketID)
		if err == nil && ticket != nil {
			return Result{
				Kind: domain.KindText,
				Reply: fmt.Sprintf("Your application %s (%s) is currently marked %q. You can see full details under My Applications.",
					ticket.PublicID, ticket.Title, ticket.Status.DisplayText()),
			}
		}
	}

	return Result{
		Kind:  domain.KindText,
		Reply: fmt.Sprintf("I could not find any application with id %s. Please check the id and try again.", intent.TicketID),
	}
}

func (g *Generator) buildMessages(query string, chunks []domain.RetrievedChunk, history []domain.ConversationTurn, targetLanguage string) []openai.ChatCompletionMessage {
	var sys strings.Builder
	sys.WriteString(systemPrompt)

	if len(chunks) > 0 {
		sys.WriteString("\n\n===== REFERENCE MATERIAL =====\n")
		for i, chunk := range chunks {
			if i > 0 {
				sys.WriteString("\n-----\n")
			}
			sys.WriteString(chunk.Chunk.Content)
		}
		sys.WriteString("\n===== END REFERENCE MATERIAL =====")
	} else {
		sys.WriteString("\n\n")
		sys.WriteString(ungroundedCaveat)
	}

	if targetLanguage != "" {
		fmt.Fprintf(&sys, "\n\nRespond in %s.", targetLanguage)
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: sys.String(),
	})

	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == domain.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Text})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: query,
	})

	return messages
}
