// Package chat drives one conversation turn: resolve the intent, call the tool, keep history.
package chat

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"concierge/internal/dispatch"
	"concierge/internal/domain"
	"concierge/internal/tools"
)

// Texts shown to the user when no tool output is available.
const (
	MsgResolveFailed = "❌ Sorry, something went wrong while understanding your request."
	MsgToolFailed    = "❌ Sorry, something went wrong while calling the tool."
	MsgUnrecognized  = "Sorry, I couldn't understand what you need."
	MsgIncomplete    = "Please provide complete details for your request."
)

type Outcome string

const (
	OutcomeAnswered     Outcome = "answered"
	OutcomeToolFailed   Outcome = "tool_failed"
	OutcomeUnrecognized Outcome = "unrecognized"
	OutcomeIncomplete   Outcome = "incomplete"
	OutcomeError        Outcome = "error"
)

// ToolCaller runs tools, locally or over the wire.
type ToolCaller interface {
	ListTools(ctx context.Context) ([]tools.Definition, error)
	CallTool(ctx context.Context, name string, params map[string]any) (domain.ToolResult, error)
}

type IntentResolver interface {
	Resolve(ctx context.Context, text string) (domain.Invocation, error)
}

type Reply struct {
	Session string         `json:"session_id"`
	Tool    string         `json:"tool,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
	Missing []string       `json:"missing,omitempty"`
	Text    string         `json:"text"`
	Outcome Outcome        `json:"outcome"`
}

type Assistant struct {
	intents IntentResolver
	caller  ToolCaller
	history domain.HistoryStore
	clock   domain.Clock
}

func NewAssistant(intents IntentResolver, caller ToolCaller, history domain.HistoryStore, clock domain.Clock) *Assistant {
	return &Assistant{intents: intents, caller: caller, history: history, clock: clock}
}

// Turn handles one user message. It never fails: every path ends in text for the user.
func (a *Assistant) Turn(ctx context.Context, session, text string) Reply {
	a.record(ctx, session, domain.RoleUser, text)
	r := a.turn(ctx, text)
	r.Session = session
	a.record(ctx, session, domain.RoleAssistant, r.Text)

	log.Info().
		Str("session", session).
		Str("tool", r.Tool).
		Str("outcome", string(r.Outcome)).
		Msg("chat_turn")
	return r
}

func (a *Assistant) turn(ctx context.Context, text string) Reply {
	inv, err := a.intents.Resolve(ctx, text)
	if err != nil {
		log.Error().Err(err).Msg("resolve intent failed")
		return Reply{Text: MsgResolveFailed, Outcome: OutcomeError}
	}

	kind, err := tools.ParseKind(inv.Tool)
	if !inv.Recognized() || err != nil {
		msg := MsgUnrecognized
		if inv.Message != "" {
			msg += "\n\n" + inv.Message
		}
		return Reply{Tool: inv.Tool, Text: msg, Outcome: OutcomeUnrecognized}
	}

	r := Reply{Tool: inv.Tool, Params: inv.Params}
	if missing := dispatch.Missing(kind, inv.Params); len(missing) > 0 {
		r.Missing, r.Text, r.Outcome = missing, MsgIncomplete, OutcomeIncomplete
		return r
	}

	res, err := a.caller.CallTool(ctx, inv.Tool, inv.Params)
	switch {
	case errors.Is(err, dispatch.ErrIncompleteParams):
		r.Text, r.Outcome = MsgIncomplete, OutcomeIncomplete
	case err != nil:
		log.Error().Err(err).Str("tool", inv.Tool).Msg("tool call failed")
		r.Text, r.Outcome = MsgToolFailed, OutcomeError
	case res.Failed:
		r.Text, r.Outcome = res.Text, OutcomeToolFailed
	default:
		r.Text, r.Outcome = res.Text, OutcomeAnswered
	}
	return r
}

func (a *Assistant) record(ctx context.Context, session, role, content string) {
	m := domain.ChatMessage{Role: role, Content: content, At: a.clock.Now()}
	if err := a.history.Append(ctx, session, m); err != nil {
		log.Warn().Err(err).Str("session", session).Msg("history append failed")
	}
}

// Tools lists the tools on offer. With a session, the listing is also kept in its history
// as system messages.
func (a *Assistant) Tools(ctx context.Context, session string) ([]tools.Definition, error) {
	defs, err := a.caller.ListTools(ctx)
	if err != nil {
		return nil, err
	}
	if session != "" {
		for _, d := range defs {
			a.record(ctx, session, domain.RoleSystem, d.Name+": "+d.Description)
		}
	}
	return defs, nil
}

func (a *Assistant) History(ctx context.Context, session string) ([]domain.ChatMessage, error) {
	return a.history.List(ctx, session)
}

func (a *Assistant) Clear(ctx context.Context, session string) error {
	return a.history.Clear(ctx, session)
}

// LocalCaller runs tools in-process through the dispatch pipeline.
type LocalCaller struct {
	Pipeline *dispatch.Pipeline
}

func (l LocalCaller) ListTools(context.Context) ([]tools.Definition, error) {
	return l.Pipeline.Tools(), nil
}

func (l LocalCaller) CallTool(ctx context.Context, name string, params map[string]any) (domain.ToolResult, error) {
	r, err := l.Pipeline.Dispatch(ctx, name, params)
	if err != nil {
		return domain.ToolResult{}, err
	}
	return domain.ToolResult{Text: r.Text, Failed: r.Failed}, nil
}
