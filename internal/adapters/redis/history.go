package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"concierge/internal/adapters/observability"
	"concierge/internal/domain"
)

const keyPrefix = "concierge:history:"

// History stores each session as a Redis list of JSON messages. Every append refreshes
// the session TTL; a zero TTL keeps sessions forever.
type History struct {
	c   *redis.Client
	ttl time.Duration
}

func New(addr, pass string, db int, ttl time.Duration) *History {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), ttl)
}

func NewWithClient(c *redis.Client, ttl time.Duration) *History {
	return &History{c: c, ttl: ttl}
}

func key(session string) string { return keyPrefix + session }

func (h *History) Append(ctx context.Context, session string, m domain.ChatMessage) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	observability.ObserveHistory("redis", "append")
	_, err = h.c.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key(session), b)
		if h.ttl > 0 {
			p.Expire(ctx, key(session), h.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

func (h *History) List(ctx context.Context, session string) ([]domain.ChatMessage, error) {
	vals, err := h.c.LRange(ctx, key(session), 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	observability.ObserveHistory("redis", "list")
	out := make([]domain.ChatMessage, 0, len(vals))
	for _, v := range vals {
		var m domain.ChatMessage
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (h *History) Clear(ctx context.Context, session string) error {
	observability.ObserveHistory("redis", "clear")
	return h.c.Del(ctx, key(session)).Err()
}

func (h *History) Ping(ctx context.Context) error { return h.c.Ping(ctx).Err() }

func (h *History) Close() error { return h.c.Close() }
