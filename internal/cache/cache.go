// Package cache provides the key/value stores backing the BaaS response cache,
// sessions and draft carts.
package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrMiss is returned by Get when the key is absent or expired.
	ErrMiss = errors.New("cache: miss")
	// ErrConflict is returned by Update when the key kept changing under it.
	ErrConflict = errors.New("cache: concurrent update")
)

// UpdateFunc maps the current value of a key to its replacement. cur is nil
// when the key is absent. It may run more than once and must not touch the
// store itself; an error aborts the update and is returned unchanged.
type UpdateFunc func(cur []byte) ([]byte, error)

// Store is a byte-oriented key/value store with per-key expiry.
// A zero ttl means the key never expires.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// Update rewrites key atomically with respect to other Updates.
	Update(ctx context.Context, key string, ttl time.Duration, fn UpdateFunc) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Ping(ctx context.Context) error
	Close() error
}
