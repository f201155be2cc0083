// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP client and retry helper shared by
// stages that call remote APIs.
package httputil

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/get-papers/pkg/types"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 5

// NewClient returns a resty client with the configured timeout and
// User-Agent. resty's own retry is left off; GetWithRetry handles 429.
func NewClient(cfg types.HTTPConfig) *resty.Client {
	c := resty.New()
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	if cfg.UserAgent != "" {
		c.SetHeader("User-Agent", cfg.UserAgent)
	}
	return c
}

// GetWithRetry issues a GET with the given query parameters and retries on
// HTTP 429 (Too Many Requests) with exponential backoff. The delay starts
// at RetryBaseDelay and doubles each attempt.
//
// When maxRetries is 0 the default (5) is used. Transport errors are
// returned immediately. If the context is cancelled during a backoff wait
// the function returns ctx.Err(). After exhausting retries the last 429
// response is returned so the caller can inspect it.
func GetWithRetry(ctx context.Context, client *resty.Client, url string, params map[string]string, maxRetries int) (*resty.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.R().
			SetContext(ctx).
			SetQueryParams(params).
			Get(url)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode() != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
