// Package intent maps free text to a tool invocation with the help of a language model.
package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/rs/zerolog/log"

	"concierge/internal/domain"
)

// ErrMalformedOutput means the model reply held a brace-delimited block that is not valid JSON.
var ErrMalformedOutput = errors.New("malformed model output")

// GeneralTool is the pseudo-tool the model answers with when no real tool fits.
const GeneralTool = "general"

var objectPattern = regexp.MustCompile(`(?s)\{.*\}`)

type Resolver struct {
	gen   domain.TextGenerator
	clock domain.Clock
}

func NewResolver(gen domain.TextGenerator, clock domain.Clock) *Resolver {
	return &Resolver{gen: gen, clock: clock}
}

// Prompt builds the full model prompt for one user message.
func (r *Resolver) Prompt(text string) string {
	today := r.clock.Now().Format(domain.DateLayout)
	return fmt.Sprintf(instructions, today) + "\n\nUser: " + text + "\n\nJSON:"
}

// Resolve asks the model for an intent. An unrecognized request is not an error; it comes
// back as an Invocation with an empty Tool.
func (r *Resolver) Resolve(ctx context.Context, text string) (domain.Invocation, error) {
	reply, err := r.gen.Generate(ctx, r.Prompt(text))
	if err != nil {
		return domain.Invocation{}, fmt.Errorf("generate via %s: %w", r.gen.Name(), err)
	}
	inv, err := Parse(reply)
	if err != nil {
		log.Warn().Err(err).Str("model", r.gen.Name()).Msg("intent_unparseable")
		return domain.Invocation{}, err
	}
	log.Debug().Str("tool", inv.Tool).Int("params", len(inv.Params)).Msg("intent_resolved")
	return inv, nil
}

// Parse extracts the invocation from a raw model reply.
func Parse(reply string) (domain.Invocation, error) {
	match := objectPattern.FindString(reply)
	if match == "" {
		return domain.Invocation{}, nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(match), &obj); err != nil {
		return domain.Invocation{}, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	tool, _ := obj["tool"].(string)
	if tool == "" || tool == GeneralTool {
		msg, _ := obj["message"].(string)
		return domain.Invocation{Message: msg}, nil
	}

	if params, ok := obj["params"].(map[string]any); ok {
		return domain.Invocation{Tool: tool, Params: params}, nil
	}
	params := make(map[string]any, len(obj))
	for k, v := range obj {
		if k != "tool" {
			params[k] = v
		}
	}
	return domain.Invocation{Tool: tool, Params: params}, nil
}
