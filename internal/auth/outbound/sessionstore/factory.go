package sessionstore

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Driver selects a concrete Store implementation.
type Driver string

const (
	// DriverMemory selects the in-process store.
	DriverMemory Driver = "memory"
	// DriverRedis selects the redis-backed store.
	DriverRedis Driver = "redis"
)

// FactoryOptions carries the configuration for every supported driver.
type FactoryOptions struct {
	// RedisClient is required for DriverRedis.
	RedisClient *redis.Client
	// SessionTTL bounds idle session state in redis.
	SessionTTL time.Duration
}

// NewFromDriver builds a Store for the given driver.
func NewFromDriver(driver Driver, opts FactoryOptions) (Store, error) {
	switch driver {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverRedis:
		if opts.RedisClient == nil {
			return nil, fmt.Errorf("sessionstore: redis driver requires a client")
		}
		return NewRedis(opts.RedisClient, opts.SessionTTL), nil
	default:
		return nil, fmt.Errorf("sessionstore: unknown driver %q", driver)
	}
}
