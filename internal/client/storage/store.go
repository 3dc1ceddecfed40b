package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/rentalauth/internal/filex"
)

// Store is a string key-value persistence capability.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// StoreCloser is a Store holding resources that must be released.
type StoreCloser interface {
	Store
	io.Closer
}

// Supported drivers.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Options select and configure a Store implementation for Open.
type Options struct {
	Driver     string
	SQLitePath string
	RedisURL   string
	KeyPrefix  string
	TTL        time.Duration
}

// Open builds the Store named by opts.Driver.
func Open(ctx context.Context, opts Options) (StoreCloser, error) {
	switch opts.Driver {
	case DriverSQLite:
		if _, err := filex.EnsureParentDir(opts.SQLitePath); err != nil {
			return nil, err
		}
		return OpenSQLite(ctx, opts.SQLitePath)
	case DriverRedis:
		rdb, err := NewRedisClient(ctx, opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(rdb, opts.KeyPrefix, opts.TTL), nil
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
