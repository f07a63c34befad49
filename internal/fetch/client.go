// Package fetch provides the HTTP client shared by search providers and the
// image downloader: bounded retries with growing backoff plus request pacing.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "reconlens/1.0 (historical reconstruction gallery builder)"

// Config holds configuration for the fetch client.
type Config struct {
	Timeout   time.Duration
	Retries   int           // additional attempts after the first one
	RetryWait time.Duration // initial backoff, grows per attempt
	UserAgent string
	// RequestsPerSecond paces outgoing requests; zero disables pacing.
	RequestsPerSecond float64
}

// Client fetches JSON documents and binary payloads with retry.
type Client struct {
	client  *resty.Client
	limiter *rate.Limiter
}

// StatusError is returned when the server answers with a non-success status
// after all retries.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: http status %d", e.URL, e.Status)
}

// New creates a fetch client.
// Parameters:
//   - cfg: client configuration; nil uses defaults.
//
// Returns:
//   - *Client: initialized client.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	wait := cfg.RetryWait
	if wait <= 0 {
		wait = 2 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", ua)
	client.SetRetryCount(cfg.Retries)
	client.SetRetryWaitTime(wait)
	client.SetRetryMaxWaitTime(wait * time.Duration(cfg.Retries+2))
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
	})

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// GetJSON fetches url with query params and decodes the JSON body into out.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - url: endpoint URL.
//   - params: query parameters.
//   - out: pointer receiving the decoded body.
//
// Returns:
//   - error: non-nil if every attempt failed or the body could not be decoded.
func (c *Client) GetJSON(ctx context.Context, url string, params map[string]string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		ForceContentType("application/json").
		SetQueryParams(params).
		SetResult(out).
		Get(url)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return &StatusError{URL: url, Status: resp.StatusCode()}
	}
	return nil
}

// GetBytes fetches url and returns the raw body.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - url: resource URL.
//   - params: optional query parameters.
//
// Returns:
//   - []byte: response body.
//   - error: non-nil if every attempt failed.
func (c *Client) GetBytes(ctx context.Context, url string, params map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req := c.client.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, &StatusError{URL: url, Status: resp.StatusCode()}
	}
	return resp.Body(), nil
}
