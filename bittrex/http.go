package bittrex

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// RetryPolicy bounds the transport retry loop. Only network-level failures
// and 429 responses are retried; any other non-2xx status fails the call
// immediately.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, first request included.
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// DefaultRetryPolicy keeps retries bounded; callers that want to give up
// earlier can pass a context with a deadline.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 4,
		WaitTime:    500 * time.Millisecond,
		MaxWaitTime: 10 * time.Second,
	}
}

func newTransport(cfg Config) *resty.Client {
	retries := cfg.Retry.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent).
		SetRetryCount(retries).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp.StatusCode() == http.StatusTooManyRequests
		}).
		SetRetryAfter(func(client *resty.Client, resp *resty.Response) (time.Duration, error) {
			// Honor Retry-After on rate limits.
			if resp != nil && resp.StatusCode() == http.StatusTooManyRequests {
				if ra := resp.Header().Get("Retry-After"); ra != "" {
					if secs, err := strconv.Atoi(ra); err == nil {
						return time.Duration(secs) * time.Second, nil
					}
				}
			}
			return 0, nil
		})

	return client
}

// send performs a GET against the fully built uri and returns the raw body
// of the first successful response. The uri is passed through untouched so
// that signed query strings reach the wire exactly as they were signed.
func (c *Client) send(ctx context.Context, uri string, header map[string]string) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	for k, v := range header {
		req.SetHeader(k, v)
	}

	resp, err := req.Get(uri)
	if err != nil {
		return nil, &TransportError{Attempts: c.cfg.Retry.MaxAttempts, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode(), Status: resp.Status()}
	}
	return resp.Body(), nil
}
