// Package redis provides a Redis-backed implementation of the
// storage.Storage interface.
//
// Each storage key is written as a plain Redis string under a configurable
// prefix (e.g. "records:students"), with no TTL: the list must survive
// until it is overwritten.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection configuration.
type Config struct {
	// Addr is the Redis server address in "host:port" form.
	Addr string

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number (0-15).
	DB int

	// Prefix is prepended to every key.
	Prefix string

	// DialTimeout bounds the connection check performed by New.
	DialTimeout time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Addr:        "localhost:6379",
		Prefix:      "records:",
		DialTimeout: 5 * time.Second,
	}
}

// ErrConnection is returned when Redis cannot be reached on startup.
var ErrConnection = errors.New("redis: connection failed")

// Redis is the concrete implementation of storage.Storage.
type Redis struct {
	client *redis.Client
	prefix string
}

// New connects to Redis and checks the connection with a PING.
func New(cfg Config) (*Redis, error) {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = DefaultConfig().DialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	return &Redis{client: client, prefix: cfg.Prefix}, nil
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

// Get retrieves the value stored under key. redis.Nil maps to found=false.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("Get: %w", err)
	}

	return val, true, nil
}

// Set stores value under key without expiry.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("Set: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
