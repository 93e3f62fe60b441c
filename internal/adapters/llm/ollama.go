// Package llm holds the text-generation backends behind domain.TextGenerator.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"concierge/internal/adapters/observability"
)

const generatePath = "/api/generate"

type Ollama struct {
	rc    *resty.Client
	model string
	rl    *rate.Limiter
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// NewOllama talks to an Ollama server at base. Calls are capped at rps per second and
// given up after timeout; nothing is retried.
func NewOllama(base, model string, timeout time.Duration, rps int) *Ollama {
	if rps <= 0 {
		rps = 2
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(base, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "concierge/1.0")
	return &Ollama{rc: rc, model: model, rl: rate.NewLimiter(rate.Limit(rps), rps)}
}

func (o *Ollama) Name() string { return "ollama/" + o.model }

func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	if err := o.rl.Wait(ctx); err != nil {
		return "", err
	}

	start := time.Now()
	var out generateResponse
	resp, err := o.rc.R().
		SetContext(ctx).
		SetBody(generateRequest{Model: o.model, Prompt: prompt, Stream: false}).
		SetResult(&out).
		SetError(&out).
		Post(generatePath)

	status := 0
	if resp != nil {
		status = resp.StatusCode()
	}
	observability.ObserveExternal("ollama", generatePath, status, time.Since(start))

	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	if resp.IsError() {
		log.Error().Int("status", status).Str("error", out.Error).Msg("ollama returned error")
		return "", fmt.Errorf("ollama generate: status %d: %s", status, out.Error)
	}
	if out.Response == "" {
		return "", errors.New("ollama generate: empty response")
	}
	return out.Response, nil
}
