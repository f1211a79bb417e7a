package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AbdulWasayUl/go-world-clock/internal/logger"
	"github.com/AbdulWasayUl/go-world-clock/models"
)

const maxRetries = 3

var (
	ErrStatus     = errors.New("non-OK status")
	ErrMaxRetries = errors.New("failed after max retries")
)

type Client struct {
	httpClient *http.Client
	rateLimit  models.RateLimitSettings
	limiter    *time.Ticker
	// Backoff is the wait between attempts after a transport error or 5xx.
	Backoff time.Duration
	// ThrottleBackoff is the wait after a 429.
	ThrottleBackoff time.Duration
}

func NewClient(rl models.RateLimitSettings) *Client {
	if rl.MaxRequests <= 0 {
		rl.MaxRequests = 1
	}
	if rl.PerDuration <= 0 {
		rl.PerDuration = time.Second
	}
	interval := rl.PerDuration / time.Duration(rl.MaxRequests)

	ticker := time.NewTicker(interval)

	return &Client{
		httpClient:      &http.Client{Timeout: 5 * time.Second},
		rateLimit:       rl,
		limiter:         ticker,
		Backoff:         time.Second,
		ThrottleBackoff: 2 * time.Second,
	}
}

// Close stops the rate limiter.
func (c *Client) Close() {
	c.limiter.Stop()
}

// Do GETs url with retries on transport errors, 429 and 5xx. Other 4xx fail fast.
func (c *Client) Do(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	for i := 0; i < maxRetries; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.limiter.C:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		logger.Debug("Making request to %s (attempt %d)", url, i+1)
		body, status, err := c.attempt(req)
		switch {
		case err != nil:
			logger.Error("HTTP request failed (attempt %d): %v", i+1, err)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if err := sleep(ctx, c.Backoff); err != nil {
				return nil, err
			}
		case status == http.StatusOK:
			return body, nil
		case status == http.StatusTooManyRequests:
			logger.Error("Server returned 429 Too Many Requests (attempt %d)", i+1)
			if err := sleep(ctx, c.ThrottleBackoff); err != nil {
				return nil, err
			}
		case status >= 500:
			logger.Error("Server returned status code %d (attempt %d)", status, i+1)
			if err := sleep(ctx, c.Backoff); err != nil {
				return nil, err
			}
		default:
			logger.Error("Server returned status code %d (attempt %d). Body: %s", status, i+1, string(body))
			return nil, fmt.Errorf("%w: %d", ErrStatus, status)
		}
	}

	return nil, ErrMaxRetries
}

// Check succeeds when url answers 200 within the retry budget.
func (c *Client) Check(ctx context.Context, url string) error {
	_, err := c.Do(ctx, url, nil)
	return err
}

func (c *Client) attempt(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
