package baas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"ambientefest/internal/cache"
)

// CachedGet serves GET path from the response cache while it is fresh.
// Concurrent misses for the same key share one request and failed
// responses are never stored. The shared request is detached from any
// single caller: each caller stops waiting when its own ctx is done.
func (c *Client) CachedGet(ctx context.Context, path string, ttl time.Duration) (json.RawMessage, error) {
	if c.cache == nil || ttl <= 0 {
		return c.Get(ctx, path)
	}
	key := c.cacheKey(path, ttl)

	if b, err := c.lookup(ctx, key); err == nil {
		c.metrics.hit(c.name)
		return b, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchBudget())
		defer cancel()

		data, err := c.Get(fetchCtx, path)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Set(fetchCtx, key, data, ttl); err != nil {
			c.logger.Warn("baas_cache_store_failed", zap.String("key", key), zap.Error(err))
		}
		return data, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(json.RawMessage), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("baas GET %s: %w", path, ctx.Err())
	}
}

// sharedWaitAllowance covers the backoff between attempts of a shared fetch.
const sharedWaitAllowance = 30 * time.Second

// fetchBudget bounds a shared fetch once no caller can cancel it.
func (c *Client) fetchBudget() time.Duration {
	return time.Duration(c.maxRetries+1)*c.http.Timeout + sharedWaitAllowance
}

func (c *Client) lookup(ctx context.Context, key string) ([]byte, error) {
	b, err := c.cache.Get(ctx, key)
	if err != nil && !errors.Is(err, cache.ErrMiss) {
		c.logger.Warn("baas_cache_read_failed", zap.String("key", key), zap.Error(err))
	}
	return b, err
}

// Invalidate drops every cached GET of resource ("/service") and its
// sub-paths without touching resources that merely share the prefix.
func (c *Client) Invalidate(ctx context.Context, resource string) {
	if c.cache == nil {
		return
	}
	base := cacheNamespace + c.baseURL + "::" + resource
	for _, suffix := range []string{"?", "/", "::"} {
		if err := c.cache.DeletePrefix(ctx, base+suffix); err != nil {
			c.logger.Warn("baas_cache_invalidate_failed", zap.String("resource", resource), zap.Error(err))
		}
	}
}

const cacheNamespace = "baas:"

func (c *Client) cacheKey(path string, ttl time.Duration) string {
	return cacheNamespace + c.baseURL + "::" + path + "::" + strconv.FormatInt(int64(ttl/time.Second), 10)
}
