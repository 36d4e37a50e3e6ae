package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrAlreadyProcessed is returned when the key was already handled.
var ErrAlreadyProcessed = errors.New("idempotency: already processed")

// Deduper guards an operation so it runs at most once per key.
type Deduper interface {
	// Once runs fn if no prior run for key succeeded within ttl. When fn
	// fails the key is released so a later delivery can retry.
	Once(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error
}

const defaultTTL = time.Minute

// RedisDeduper is a Deduper backed by redis SETNX.
type RedisDeduper struct {
	client *redis.Client
	prefix string
}

// NewRedis returns a redis-backed Deduper.
func NewRedis(client *redis.Client) *RedisDeduper {
	return &RedisDeduper{
		client: client,
		prefix: "dedupe:",
	}
}

func (d *RedisDeduper) Once(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	fk := d.prefix + key

	acquired, err := d.client.SetNX(ctx, fk, "1", ttl).Result()
	if err != nil {
		return err
	}
	if !acquired {
		return ErrAlreadyProcessed
	}

	if err := fn(ctx); err != nil {
		// Release so the next delivery of this key gets another attempt.
		if delErr := d.client.Del(ctx, fk).Err(); delErr != nil {
			return errors.Join(err, delErr)
		}
		return err
	}

	return nil
}

// NoopDeduper runs every call; used when redis is not configured.
type NoopDeduper struct{}

// NewNoop returns a Deduper that never suppresses a run.
func NewNoop() *NoopDeduper {
	return &NoopDeduper{}
}

func (NoopDeduper) Once(ctx context.Context, _ string, _ time.Duration, fn func(context.Context) error) error {
	return fn(ctx)
}
