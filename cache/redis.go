// Package cache publishes market snapshots to Redis so dashboards and other
// read-side consumers can poll current prices without touching the engine.
// Publishing is best-effort: a dead Redis never affects the simulation.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Jinish2170/Tradewars/market"
)

// TTL on published keys; stale entries disappear on their own if the
// publisher stops.
const keyTTL = 2 * time.Minute

type symbolPayload struct {
	Symbol    string        `json:"symbol"`
	Price     float64       `json:"price"`
	Available market.Shares `json:"available"`
	Volume    market.Shares `json:"volume"`
	Change    float64       `json:"change_percent"`
	Timestamp int64         `json:"timestamp"`
}

type Publisher struct {
	client *redis.Client
}

func NewPublisher(addr, password string, db int) *Publisher {
	return &Publisher{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Ping verifies connectivity; callers may log and continue on failure.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// PublishSnapshot writes one latest:<symbol> key per instrument.
func (p *Publisher) PublishSnapshot(ctx context.Context, snap market.Snapshot) error {
	ts := snap.Time.Unix()
	for sym, price := range snap.Prices {
		payload := symbolPayload{
			Symbol:    sym,
			Price:     price,
			Available: snap.Quantities[sym],
			Volume:    snap.Volumes[sym],
			Change:    snap.Changes[sym],
			Timestamp: ts,
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", sym, err)
		}
		key := "latest:" + sym
		if err := p.client.Set(ctx, key, data, keyTTL).Err(); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

// Latest reads back one symbol's published state.
func (p *Publisher) Latest(ctx context.Context, symbol string) (map[string]any, error) {
	data, err := p.client.Get(ctx, "latest:"+symbol).Result()
	if err != nil {
		return nil, fmt.Errorf("get latest %s: %w", symbol, err)
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Publisher) Close() error {
	return p.client.Close()
}
