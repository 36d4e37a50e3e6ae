package otpledger

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/danukusuma/gatekeeper/internal/pkg/clock"
	"github.com/danukusuma/gatekeeper/internal/pkg/hash"
)

// Driver selects a concrete Ledger implementation.
type Driver string

const (
	// DriverMemory selects the in-process ledger.
	DriverMemory Driver = "memory"
	// DriverRedis selects the redis-backed ledger.
	DriverRedis Driver = "redis"
)

// FactoryOptions carries the configuration for every supported driver.
type FactoryOptions struct {
	// Hasher hashes codes at rest. Required.
	Hasher hash.Hash
	// Clock supplies the time for expiry checks. Required.
	Clock clock.Clocker
	// RedisClient is required for DriverRedis.
	RedisClient *redis.Client
}

// NewFromDriver builds a Ledger for the given driver.
func NewFromDriver(driver Driver, opts FactoryOptions) (Ledger, error) {
	if opts.Hasher == nil || opts.Clock == nil {
		return nil, fmt.Errorf("otpledger: hasher and clock are required")
	}

	switch driver {
	case DriverMemory, "":
		return NewMemory(opts.Hasher, opts.Clock), nil
	case DriverRedis:
		if opts.RedisClient == nil {
			return nil, fmt.Errorf("otpledger: redis driver requires a client")
		}
		return NewRedis(opts.RedisClient, opts.Hasher, opts.Clock), nil
	default:
		return nil, fmt.Errorf("otpledger: unknown driver %q", driver)
	}
}
