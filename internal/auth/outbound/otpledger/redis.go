package otpledger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/danukusuma/gatekeeper/internal/auth/entity"
	"github.com/danukusuma/gatekeeper/internal/pkg/clock"
	"github.com/danukusuma/gatekeeper/internal/pkg/hash"
)

// expiryGrace keeps redis entries past their logical expiry so Verify can
// still tell an expired code apart from a missing one.
const expiryGrace = 10 * time.Minute

type redisEntry struct {
	CodeHash  string    `json:"code_hash"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Redis is a Ledger backed by one redis string per identity. The logical
// expiry lives inside the value; the redis TTL is only a garbage floor.
type Redis struct {
	client *redis.Client
	hasher hash.Hash
	clock  clock.Clocker
	prefix string
}

// NewRedis returns a redis-backed ledger.
func NewRedis(client *redis.Client, hasher hash.Hash, clk clock.Clocker) *Redis {
	return &Redis{
		client: client,
		hasher: hasher,
		clock:  clk,
		prefix: "otp:",
	}
}

func (r *Redis) key(identity string) string {
	return r.prefix + identity
}

func (r *Redis) Issue(ctx context.Context, identity, code string, ttl time.Duration) (time.Time, error) {
	codeHash, err := r.hasher.Hash(code)
	if err != nil {
		return time.Time{}, err
	}

	expiresAt := r.clock.Now().Add(ttl)

	raw, err := json.Marshal(redisEntry{
		CodeHash:  string(codeHash),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return time.Time{}, err
	}

	if err := r.client.Set(ctx, r.key(identity), raw, ttl+expiryGrace).Err(); err != nil {
		return time.Time{}, err
	}

	return expiresAt, nil
}

func (r *Redis) Verify(ctx context.Context, identity, submitted string) error {
	key := r.key(identity)

	raw, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	var stored redisEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		return err
	}

	ent := entity.OtpEntry{CodeHash: stored.CodeHash, ExpiresAt: stored.ExpiresAt}
	if ent.Expired(r.clock.Now()) {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return err
		}
		return ErrExpired
	}

	if !r.hasher.Verify(ent.CodeHash, submitted) {
		return ErrMismatch
	}

	return r.client.Del(ctx, key).Err()
}
