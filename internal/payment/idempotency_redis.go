package payment

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key prefix for reserved transaction ids
const transactionKeyPrefix = "payment:txn:"

// RedisIdempotency is a Redis-backed transaction-id reservation store.
// This is the production implementation for distributed deployments where
// multiple instances must agree on which transaction ids have settled.
type RedisIdempotency struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisIdempotencyOption configures a RedisIdempotency instance.
type RedisIdempotencyOption func(*RedisIdempotency)

// WithReservationTTL overrides how long a reservation is held.
func WithReservationTTL(ttl time.Duration) RedisIdempotencyOption {
	return func(r *RedisIdempotency) { r.ttl = ttl }
}

// NewRedisIdempotency constructs a Redis-backed reservation store.
func NewRedisIdempotency(client *redis.Client, opts ...RedisIdempotencyOption) *RedisIdempotency {
	store := &RedisIdempotency{
		client: client,
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store
}

// Reserve claims a transaction id. SETNX makes the claim atomic: the first
// caller wins, later callers see false.
func (r *RedisIdempotency) Reserve(ctx context.Context, transactionID string) (bool, error) {
	if transactionID == "" {
		return true, nil
	}
	key := transactionKeyPrefix + transactionID
	// Store "1" as a simple marker; the key existence is what matters
	return r.client.SetNX(ctx, key, "1", r.ttl).Result()
}

// InMemoryIdempotency is the single-process reservation store used in
// development and tests.
type InMemoryIdempotency struct {
	mu       sync.Mutex
	reserved map[string]struct{}
}

func NewInMemoryIdempotency() *InMemoryIdempotency {
	return &InMemoryIdempotency{reserved: make(map[string]struct{})}
}

func (s *InMemoryIdempotency) Reserve(_ context.Context, transactionID string) (bool, error) {
	if transactionID == "" {
		return true, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reserved[transactionID]; exists {
		return false, nil
	}
	s.reserved[transactionID] = struct{}{}
	return true, nil
}
