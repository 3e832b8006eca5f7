// Package baas is the HTTP client for the no-code backend. It owns the retry
// policy, the TTL response cache and the mapping of error bodies to APIError.
package baas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"ambientefest/internal/cache"
)

const (
	maxResponseBytes = 16 << 20
	backoffBase      = 250 * time.Millisecond
	maxJitter        = 250 * time.Millisecond
)

// Options configures a Client.
type Options struct {
	// Name labels logs and metrics, e.g. "store" or "auth".
	Name          string
	BaseURL       string
	Timeout       time.Duration
	UploadTimeout time.Duration
	MaxRetries    int
	Cache         cache.Store
	Logger        *zap.Logger
	Metrics       *Metrics
	// Transport overrides the instrumented default transport.
	Transport http.RoundTripper
}

// Client talks JSON to one BaaS API group. It is safe for concurrent use.
type Client struct {
	name       string
	baseURL    string
	http       *http.Client
	uploadHTTP *http.Client
	cache      cache.Store
	group      singleflight.Group
	maxRetries int
	logger     *zap.Logger
	metrics    *Metrics

	sleep  func(context.Context, time.Duration) error
	jitter func() time.Duration
}

// New builds a Client. Zero timeouts default to 15s and 60s.
func New(opts Options) *Client {
	transport := opts.Transport
	if transport == nil {
		transport = otelhttp.NewTransport(http.DefaultTransport)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	uploadTimeout := opts.UploadTimeout
	if uploadTimeout <= 0 {
		uploadTimeout = 60 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	name := opts.Name
	if name == "" {
		name = "store"
	}
	return &Client{
		name:       name,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		http:       &http.Client{Transport: transport, Timeout: timeout},
		uploadHTTP: &http.Client{Transport: transport, Timeout: uploadTimeout},
		cache:      opts.Cache,
		maxRetries: opts.MaxRetries,
		logger:     logger.With(zap.String("client", name)),
		metrics:    opts.Metrics,
		sleep:      sleepContext,
		jitter: func() time.Duration {
			return time.Duration(rand.Int64N(int64(maxJitter)))
		},
	}
}

// BaseURL returns the API group root.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// Ping checks that the BaaS answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Get(ctx, "/health")
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		payload = b
	}

	for attempt := 0; ; attempt++ {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("build %s %s: %w", method, path, err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		data, status, header, err := c.send(ctx, c.http, req)
		if err != nil {
			return nil, err
		}

		if status == http.StatusTooManyRequests && method == http.MethodGet && attempt < c.maxRetries {
			delay := c.retryDelay(header.Get("Retry-After"), attempt+1)
			c.metrics.retry(c.name)
			c.logger.Debug("baas_retry",
				zap.String("path", path),
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
			)
			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
			continue
		}

		if status/100 != 2 {
			apiErr := newAPIError(method, path, status, data)
			c.logFailure(apiErr)
			return nil, apiErr
		}
		return data, nil
	}
}

func (c *Client) send(ctx context.Context, hc *http.Client, req *http.Request) ([]byte, int, http.Header, error) {
	if tok := TokenFrom(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := hc.Do(req)
	if err != nil {
		c.metrics.request(c.name, req.Method, 0)
		c.logger.Error("baas_transport_failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err),
		)
		return nil, 0, nil, fmt.Errorf("baas %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.metrics.request(c.name, req.Method, resp.StatusCode)
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, 0, nil, fmt.Errorf("read %s %s: %w", req.Method, req.URL.Path, err)
	}
	return bytes.TrimSpace(data), resp.StatusCode, resp.Header, nil
}

// retryDelay honours Retry-After (seconds or HTTP date) and otherwise backs
// off exponentially from 250ms with up to 250ms of jitter.
func (c *Client) retryDelay(retryAfter string, n int) time.Duration {
	if ra := strings.TrimSpace(retryAfter); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil {
			if secs > 0 {
				return time.Duration(secs) * time.Second
			}
		} else if at, err := http.ParseTime(ra); err == nil {
			if d := time.Until(at); d > 0 {
				return d
			}
		}
	}
	return backoffBase*time.Duration(1<<n) + c.jitter()
}

// 404s on cart resources are expected during cart cleanup.
func (c *Client) logFailure(e *APIError) {
	fields := []zap.Field{
		zap.String("method", e.Method),
		zap.String("path", e.Path),
		zap.Int("status", e.Status),
		zap.String("code", e.Code),
		zap.String("message", e.Message),
	}
	if e.Status == http.StatusNotFound && strings.HasPrefix(e.Path, "/cart") {
		c.logger.Info("baas_notice", fields...)
		return
	}
	c.logger.Error("baas_request_failed", fields...)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
