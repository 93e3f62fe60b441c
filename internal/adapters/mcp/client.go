package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"concierge/internal/adapters/observability"
	"concierge/internal/domain"
	"concierge/internal/tools"
)

var (
	ErrNotFound    = errors.New("mcp: endpoint not found")
	ErrRateLimited = errors.New("mcp: rate limited")
)

// Client calls a remote tool server. Each call is bounded by the client timeout and
// is never retried; a timeout surfaces to the caller as an error.
type Client struct {
	url string
	hc  *http.Client
	rl  *rate.Limiter
	seq atomic.Int64
}

func NewClient(url string, timeout time.Duration, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		url: url,
		hc:  &http.Client{Timeout: timeout},
		rl:  rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (c *Client) Initialize(ctx context.Context) error {
	params := map[string]any{
		"protocolVersion": ProtocolVersion,
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "concierge-assistant", "version": "1.0"},
	}
	var out map[string]any
	if err := c.call(ctx, MethodInitialize, params, &out); err != nil {
		return err
	}
	return c.notify(ctx, MethodInitialized)
}

func (c *Client) ListTools(ctx context.Context) ([]tools.Definition, error) {
	var out struct {
		Tools []tools.Definition `json:"tools"`
	}
	if err := c.call(ctx, MethodToolsList, map[string]any{}, &out); err != nil {
		return nil, err
	}
	return out.Tools, nil
}

func (c *Client) CallTool(ctx context.Context, name string, params map[string]any) (domain.ToolResult, error) {
	var out CallResult
	if err := c.call(ctx, MethodToolsCall, CallParams{Name: name, Arguments: params}, &out); err != nil {
		return domain.ToolResult{}, err
	}
	return domain.ToolResult{Text: out.Text(), Failed: out.IsError}, nil
}

// ---- Internals ----

func (c *Client) call(ctx context.Context, method string, params, out any) error {
	id := strconv.FormatInt(c.seq.Add(1), 10)
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	resp, err := c.post(ctx, method, Request{JSONRPC: Version, ID: json.RawMessage(id), Method: method, Params: raw})
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

// envelope is the client-side view of Response with the result left undecoded.
type envelope struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *Error          `json:"error"`
}

func (c *Client) notify(ctx context.Context, method string) error {
	_, err := c.post(ctx, method, Request{JSONRPC: Version, Method: method})
	return err
}

// post sends one request with client-side rate limiting and decodes the JSON-RPC envelope.
// Notifications get no envelope back and return a nil response.
func (c *Client) post(ctx context.Context, method string, rpc Request) (*envelope, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}
	body, err := json.Marshal(rpc)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "concierge/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("toolserver", method, 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("toolserver", method, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		var out envelope
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("decode %s response: %w", method, err)
		}
		return &out, nil

	case http.StatusAccepted, http.StatusNoContent:
		_, _ = io.Copy(io.Discard, resp.Body)
		if !rpc.IsNotification() {
			return nil, fmt.Errorf("%s: empty response", method)
		}
		return nil, nil

	case http.StatusNotFound:
		return nil, ErrNotFound

	case http.StatusTooManyRequests:
		log.Warn().Str("method", method).Msg("tool server rate limited us")
		return nil, ErrRateLimited

	default:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}
