package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "madinah-companion"
)

// Config controls how the client talks to the backend.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // Requests per second, 0 disables limiting
	UserAgent string
}

// Client is the typed gateway to the Madinah Arabic REST backend
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
}

// NewClient creates a new backend client
func NewClient(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
		log:     log,
	}
}

// call runs one request against endpoint and applies its failure policy.
// Under PolicyDegrade the returned error is always nil and a failure
// yields the zero value of T.
func call[T any](ctx context.Context, c *Client, endpoint EndpointName, query url.Values, params ...string) (T, error) {
	var out T

	ep, ok := Endpoints[endpoint]
	if !ok {
		return out, fmt.Errorf("unknown endpoint %q", endpoint)
	}

	err := c.get(ctx, ep.Expand(params...), query, &out)
	if err == nil {
		return out, nil
	}

	if ep.Policy == PolicyDegrade {
		c.log.Warn("backend request failed, returning empty result",
			zap.String("endpoint", string(ep.Name)),
			zap.Strings("params", params),
			zap.Error(err),
		)
		var zero T
		return zero, nil
	}
	return out, err
}

// list is call for collection endpoints; the result is never nil.
func list[T any](ctx context.Context, c *Client, endpoint EndpointName, query url.Values, params ...string) ([]T, error) {
	items, err := call[[]T](ctx, c, endpoint, query, params...)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// get fetches path, normalizes the response shape and decodes it into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &TransportError{URL: target, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &TransportError{URL: target, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPStatusError{URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{URL: target, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	data, err := normalize(body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return newDecodeError(body, err)
	}
	return nil
}
