// Package cache is the key/value store behind sessions and small read-through
// caches. Redis is used when reachable; otherwise an in-process memory store
// keeps single-instance deployments and tests working.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrMiss is returned by Store.Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is implemented by the Redis and memory drivers.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Name() string
}

var current Store = NewMemoryStore()

// Use swaps the process-wide store.
func Use(s Store) { current = s }

// Current returns the process-wide store.
func Current() Store { return current }

// Get loads key and unmarshals it into dest. It reports false on a miss or
// a decode failure.
func Get(ctx context.Context, key string, dest interface{}) bool {
	raw, err := current.Get(ctx, key)
	if err != nil {
		observe(false)
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		observe(false)
		return false
	}
	observe(true)
	return true
}

// Set marshals value as JSON and stores it under key for ttl.
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return current.Set(ctx, key, data, ttl)
}

// Del removes one or more keys.
func Del(ctx context.Context, keys ...string) error {
	return current.Del(ctx, keys...)
}

// Remember returns the cached value for key, or calls load, caches its
// result for ttl and returns it.
func Remember(ctx context.Context, key string, ttl time.Duration, dest interface{}, load func() error) error {
	if Get(ctx, key, dest) {
		return nil
	}
	if err := load(); err != nil {
		return err
	}
	return Set(ctx, key, dest, ttl)
}

// HitObserver receives hit/miss notifications; pkg/metrics installs one at
// boot so this package stays free of Prometheus imports.
var HitObserver func(driver string, hit bool)

func observe(hit bool) {
	if HitObserver != nil {
		HitObserver(current.Name(), hit)
	}
}
