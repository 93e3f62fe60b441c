// Package dispatch turns a resolved (tool, params) pair into the text shown to the user.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"concierge/internal/adapters/observability"
	"concierge/internal/tools"
)

var (
	ErrUnknownTool      = errors.New("unknown tool")
	ErrIncompleteParams = errors.New("incomplete parameters")
)

// Reply is a rendered tool result. Failed marks a service failure rendered as text.
type Reply struct {
	Tool   string `json:"tool"`
	Text   string `json:"text"`
	Failed bool   `json:"failed"`
}

type Pipeline struct {
	backend tools.Backend
}

func New(b tools.Backend) *Pipeline { return &Pipeline{backend: b} }

// Missing lists, sorted, the parameters that are null plus the required ones that are absent.
func Missing(k tools.Kind, params map[string]any) []string {
	seen := map[string]bool{}
	var out []string
	for name, v := range params {
		if v == nil {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, name := range tools.Required(k) {
		if _, ok := params[name]; !ok && !seen[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Dispatch runs the named tool. Unknown tools and incomplete parameters come back as
// errors and the tool is not called; service failures come back as a failed Reply.
func (p *Pipeline) Dispatch(ctx context.Context, name string, params map[string]any) (Reply, error) {
	k, err := tools.ParseKind(name)
	if err != nil {
		observability.ObserveToolCall("unknown", "unknown_tool")
		return Reply{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if missing := Missing(k, params); len(missing) > 0 {
		observability.ObserveToolCall(string(k), "incomplete")
		return Reply{}, fmt.Errorf("%w: %s", ErrIncompleteParams, strings.Join(missing, ", "))
	}

	text, err := tools.Invoke(ctx, p.backend, k, params)
	if err != nil {
		log.Warn().Err(err).Str("tool", string(k)).Msg("tool_failed")
		observability.ObserveToolCall(string(k), "failed")
		return Reply{Tool: string(k), Text: failureText(k, err), Failed: true}, nil
	}
	observability.ObserveToolCall(string(k), "ok")
	return Reply{Tool: string(k), Text: text}, nil
}

func failureText(k tools.Kind, err error) string {
	if k == tools.BookHotel {
		return "❌ Booking failed: " + err.Error()
	}
	return "❌ " + err.Error()
}

// Tools lists the definitions the pipeline can dispatch.
func (p *Pipeline) Tools() []tools.Definition { return tools.Definitions() }
