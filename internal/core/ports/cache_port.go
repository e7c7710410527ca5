package ports

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

type CachePort interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	// AcquireLock sets key only if absent and returns the owner token of the new lock.
	// It reports false when another holder owns it.
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	// ReleaseLock deletes key only while it still holds token.
	ReleaseLock(ctx context.Context, key, token string) error
}
