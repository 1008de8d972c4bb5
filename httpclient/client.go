package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

// Client is a wrapper for HTTP client with rate limiting and retries
type Client struct {
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	maxElapsed time.Duration
	maxRetries uint64
}

type Options struct {
	Timeout         time.Duration
	RequestsPerSec  int
	MaxRetries      int
	MaxRetryTimeout time.Duration
}

func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerSec == 0 {
		opts.RequestsPerSec = 5
	}
	if opts.MaxRetryTimeout == 0 {
		opts.MaxRetryTimeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}

	return &Client{
		HTTPClient: &http.Client{Timeout: opts.Timeout},
		Limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(opts.RequestsPerSec)), opts.RequestsPerSec),
		maxElapsed: opts.MaxRetryTimeout,
		maxRetries: uint64(opts.MaxRetries),
	}
}

// GetJSON issues a GET to url and decodes the JSON body into out.
// Transport errors and 5xx responses are retried with exponential backoff.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	if err := c.Limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			statusErr := &StatusError{StatusCode: resp.StatusCode}
			if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(statusErr)
			}
			return statusErr
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
		}
		return nil
	}

	strategy := backoff.NewExponentialBackOff()
	strategy.InitialInterval = 200 * time.Millisecond
	strategy.MaxElapsedTime = c.maxElapsed

	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(strategy, c.maxRetries), ctx))
}

// StatusError represents an error due to a non-200 HTTP status code
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("non-200 status code: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
