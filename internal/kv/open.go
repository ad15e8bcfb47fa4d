package kv

import (
	"context"
	"fmt"
)

// Driver names accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Options selects and configures a Store implementation.
type Options struct {
	Driver string
	Path   string
	Redis  RedisOptions
}

// Open returns the Store for o.Driver. An empty driver means SQLite.
func Open(ctx context.Context, o Options) (Store, error) {
	switch o.Driver {
	case "", DriverSQLite:
		return NewSQLiteStore(o.Path)
	case DriverRedis:
		return NewRedisStore(ctx, o.Redis)
	case DriverMemory:
		return NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", o.Driver)
	}
}
