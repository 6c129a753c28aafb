// Package cache holds the catalog result cache. Values are opaque bytes
// (JSON-encoded pages) so the same interface fits memory and Redis.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL  = 30 * time.Second
	DefaultSize = 512
)

// Store is a short-lived result cache. A miss is (nil, false, nil).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Purge drops every entry; called after any catalog write.
	Purge(ctx context.Context) error
}

// Noop is used when caching is switched off.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte) error         { return nil }
func (Noop) Purge(context.Context) error                       { return nil }

// New picks the store named by kind: "memory", "redis" or "off".
// "redis" falls back to memory when client is nil.
func New(kind string, client *redis.Client, capacity int, ttl time.Duration) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "memory":
		return NewMemoryStore(capacity, ttl), nil
	case "redis":
		if client == nil {
			return NewMemoryStore(capacity, ttl), nil
		}
		return NewRedisStore(client, "draymodas:catalog:", ttl), nil
	case "off", "none":
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown CATALOG_CACHE %q", kind)
	}
}
