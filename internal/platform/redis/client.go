// Package redis wraps the go-redis client behind the process configuration so
// main can treat "redis configured" as a single optional dependency.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"backoffice/internal/platform/config"
)

// Client adds health checking on top of the go-redis client.
type Client struct {
	*redis.Client
}

// New dials Redis from the provided configuration and verifies the connection.
// A nil client with nil error means Redis is not configured.
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health reports whether the Redis connection still answers.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
