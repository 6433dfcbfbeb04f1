package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
	"github.com/pro-joshi-grammer/sahayatha/internal/generator"
	"github.com/pro-joshi-grammer/sahayatha/internal/telemetry"
)

const (
	// ModeVoice asks for a spoken reply alongside the text.
	ModeVoice = "voice"
	// ModeText is the default text-only mode.
	ModeText = "text"

	busyReply    = "The assistant is handling many requests right now. Please try again in a few seconds."
	apologyReply = "Sorry, I could not process your question right now. Please try again in a moment."
)

// Retriever finds grounding chunks for a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error)
}

// Generator produces an answer from query, grounding, and history.
type Generator interface {
	Generate(ctx context.Context, query string, chunks []domain.RetrievedChunk, history []domain.ConversationTurn, targetLanguage string) (generator.Result, error)
}

// Synthesizer renders a spoken version of a text reply.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, languageHint string) (string, error)
}

// Request is one chat turn. Voice input is transcribed at the HTTP boundary;
// by the time a request reaches the orchestrator, Message is always text.
type Request struct {
	SessionID      string
	Message        string
	TargetLanguage string
	Mode           string
}

// Orchestrator runs the retrieve → generate → synthesize pipeline and turns
// every outcome, including failures, into a well-formed envelope.
type Orchestrator struct {
	retriever   Retriever
	generator   Generator
	synthesizer Synthesizer
	history     *HistoryStore
	gate        *Gate
	topK        int
}

// NewOrchestrator wires the pipeline. synthesizer may be nil; voice-mode
// requests then return text only.
func NewOrchestrator(retriever Retriever, gen Generator, synthesizer Synthesizer, history *HistoryStore, gate *Gate, topK int) *Orchestrator {
	if topK <= 0 {
		topK = 4
	}
	return &Orchestrator{
		retriever:   retriever,
		generator:   gen,
		synthesizer: synthesizer,
		history:     history,
		gate:        gate,
		topK:        topK,
	}
}

// HandleChat processes one turn. The returned envelope is always well
// formed; pipeline failures degrade per stage and never leak raw errors.
func (o *Orchestrator) HandleChat(ctx context.Context, req Request) domain.Envelope {
	query := strings.TrimSpace(req.Message)
	if query == "" {
		return domain.FailedEnvelope("message is empty")
	}

	ctx, span := telemetry.StartSpan(ctx, "chat.handle", telemetry.SpanAttributes{
		SessionID: req.SessionID,
		Language:  req.TargetLanguage,
		Operation: "chat",
	})
	defer span.End()

	// Retrieval failure degrades to zero chunks; the generator's fallback
	// policy decides what happens from there.
	chunks, err := o.retriever.Retrieve(ctx, query, o.topK)
	if err != nil {
		log.Printf("chat: retrieval degraded to empty result: %v", err)
		telemetry.CaptureError(ctx, err)
		chunks = nil
	}
	telemetry.AddBreadcrumb(ctx, "chat", fmt.Sprintf("retrieved %d chunks", len(chunks)))

	release, err := o.gate.Acquire(ctx)
	if err != nil {
		if err == domain.ErrPipelineBusy {
			return domain.FailedEnvelope(busyReply)
		}
		return domain.FailedEnvelope(apologyReply)
	}
	defer release()

	history := o.history.Turns(req.SessionID)

	result, err := o.generator.Generate(ctx, query, chunks, history, req.TargetLanguage)
	if err != nil {
		log.Printf("chat: generation failed: %v", err)
		span.SetError(err)
		return domain.FailedEnvelope(apologyReply)
	}

	telemetry.AddBreadcrumb(ctx, "chat", "generated "+string(result.Kind)+" reply")

	var envelope domain.Envelope
	switch result.Kind {
	case domain.KindStructuredBill:
		envelope = domain.BillEnvelope(result.Bill)
	default:
		envelope = domain.TextEnvelope(result.Reply)
	}

	o.history.Append(req.SessionID, domain.RoleUser, query)
	if envelope.Kind == domain.KindText {
		o.history.Append(req.SessionID, domain.RoleAssistant, envelope.BotReply)
	}

	// Audio is a side channel: the text result above is already final, so a
	// synthesis failure only costs the spoken version.
	if req.Mode == ModeVoice && envelope.Kind == domain.KindText && o.synthesizer != nil {
		ref, err := o.synthesizer.Synthesize(ctx, envelope.BotReply, req.TargetLanguage)
		if err != nil {
			log.Printf("chat: synthesis failed, returning text only: %v", err)
			telemetry.CaptureError(ctx, err)
		} else {
			envelope.AudioRef = ref
			telemetry.AddBreadcrumb(ctx, "chat", "attached spoken reply")
		}
	}

	return envelope
}
