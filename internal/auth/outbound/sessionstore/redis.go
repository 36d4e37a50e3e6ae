package sessionstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldChallenge = "challenge"
	fieldPending   = "pending"
	fieldIdentity  = "identity"
)

// takeField gets and clears a hash field in one atomic step.
var takeField = redis.NewScript(`
local v = redis.call('HGET', KEYS[1], ARGV[1])
if v then
  redis.call('HDEL', KEYS[1], ARGV[1])
end
return v
`)

// Redis is a Store backed by one redis hash per session. The key TTL is
// refreshed on every write so abandoned sessions expire with their cookie.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis returns a redis-backed store. ttl bounds how long idle session
// state is kept; it should match the session cookie lifetime.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Redis{
		client: client,
		prefix: "session:",
		ttl:    ttl,
	}
}

func (r *Redis) key(token string) string {
	return r.prefix + token
}

func (r *Redis) SetChallenge(ctx context.Context, token, answer string) error {
	return r.setFields(ctx, token, map[string]string{fieldChallenge: answer}, nil)
}

func (r *Redis) TakeChallenge(ctx context.Context, token string) (string, error) {
	return r.take(ctx, token, fieldChallenge)
}

func (r *Redis) SetPendingIdentity(ctx context.Context, token, identity string) error {
	return r.setFields(ctx, token, map[string]string{fieldPending: identity}, []string{fieldIdentity})
}

func (r *Redis) TakePendingIdentity(ctx context.Context, token string) (string, error) {
	return r.take(ctx, token, fieldPending)
}

func (r *Redis) SetAuthenticated(ctx context.Context, token, identity string) error {
	return r.setFields(ctx, token, map[string]string{fieldIdentity: identity}, []string{fieldPending})
}

func (r *Redis) Authenticated(ctx context.Context, token string) (string, error) {
	identity, err := r.client.HGet(ctx, r.key(token), fieldIdentity).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return identity, nil
}

func (r *Redis) Clear(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.key(token)).Err()
}

func (r *Redis) take(ctx context.Context, token, field string) (string, error) {
	v, err := takeField.Run(ctx, r.client, []string{r.key(token)}, field).Result()
	if err == redis.Nil || v == nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	s, _ := v.(string)

	return s, nil
}

func (r *Redis) setFields(ctx context.Context, token string, set map[string]string, clear []string) error {
	key := r.key(token)

	pipe := r.client.TxPipeline()
	for f, v := range set {
		pipe.HSet(ctx, key, f, v)
	}
	for _, f := range clear {
		pipe.HDel(ctx, key, f)
	}
	pipe.Expire(ctx, key, r.ttl)

	_, err := pipe.Exec(ctx)

	return err
}
