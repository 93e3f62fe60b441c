package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"concierge/internal/adapters/observability"
)

type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
	rl     *rate.Limiter
}

func NewGemini(ctx context.Context, apiKey, model string, rps int) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}
	if rps <= 0 {
		rps = 2
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{
		client: client,
		model:  client.GenerativeModel(model),
		name:   model,
		rl:     rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (g *Gemini) Name() string { return "gemini/" + g.name }

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if err := g.rl.Wait(ctx); err != nil {
		return "", err
	}
	start := time.Now()
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	status := 200
	if err != nil {
		status = 0
	}
	observability.ObserveExternal("gemini", "GenerateContent", status, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini generate: no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

func (g *Gemini) Close() error { return g.client.Close() }
