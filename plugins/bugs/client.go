package bugs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/myply/myply-go/host"
	"github.com/sony/gobreaker"
)

const (
	defaultSearchEndpoint  = "https://m.bugs.co.kr/api/getSearchList"
	defaultContentEndpoint = "https://m.bugs.co.kr/api/getShareAlbumList"
	defaultUserAgent       = "Mozilla/5.0 (Linux; Android 13) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36"
	defaultTimeout         = 10 * time.Second

	maxErrorBodySnippet = 256
)

// StatusError reports a non-2xx answer from the service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client performs single-shot form POSTs against the Bugs mobile API.
type Client struct {
	httpClient      *retryablehttp.Client
	breaker         *gobreaker.CircuitBreaker
	searchEndpoint  string
	contentEndpoint string
	userAgent       string
	logger          host.Logger
}

// NewClient returns a client configured from settings.
func NewClient(settings Settings, logger host.Logger) *Client {
	if logger == nil {
		logger = host.NopLogger{}
	}

	c := &Client{
		httpClient:      retryablehttp.NewClient(),
		searchEndpoint:  settings.SearchEndpoint,
		contentEndpoint: settings.ContentEndpoint,
		userAgent:       settings.UserAgent,
		logger:          logger,
	}

	// One attempt per call: failures go straight back to the caller.
	c.httpClient.RetryMax = 0
	c.httpClient.CheckRetry = func(ctx context.Context, _ *http.Response, err error) (bool, error) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		return false, err
	}
	c.httpClient.HTTPClient.Timeout = settings.Timeout
	c.httpClient.Logger = nil

	// Zero leaves the breaker off and every call goes to the service.
	if failures := settings.BreakerFailures; failures > 0 {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "bugs-api",
			MaxRequests: failures,
			Interval:    10 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
		})
	}
	return c
}

// SearchEndpoint returns the configured search URL.
func (c *Client) SearchEndpoint() string { return c.searchEndpoint }

// ContentEndpoint returns the configured playlist content URL.
func (c *Client) ContentEndpoint() string { return c.contentEndpoint }

// Post sends an encoded body to endpoint and returns the raw body of a 2xx
// answer. Any other outcome is an error. headers carry the body's content type.
func (c *Client) Post(ctx context.Context, endpoint string, body []byte, headers http.Header) ([]byte, error) {
	var payload []byte
	err := c.execute(ctx, func() error {
		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		for key, values := range headers {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}
		c.setHeaders(req)

		started := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		c.logger.Debug("bugs request", "endpoint", endpoint, "status", resp.StatusCode, "elapsed", time.Since(started))

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &StatusError{StatusCode: resp.StatusCode, Body: snippet(data)}
		}
		payload = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) setHeaders(req *retryablehttp.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://m.bugs.co.kr/")
}

func (c *Client) execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.breaker == nil {
		return fn()
	}

	// A caller giving up says nothing about the service's health.
	var abandoned error
	_, err := c.breaker.Execute(func() (interface{}, error) {
		err := fn()
		if err != nil && ctx.Err() != nil {
			abandoned = err
			return nil, nil
		}
		return nil, err
	})
	if abandoned != nil {
		return abandoned
	}
	return err
}

func snippet(data []byte) string {
	text := strings.TrimSpace(string(data))
	if len(text) > maxErrorBodySnippet {
		text = text[:maxErrorBodySnippet] + "..."
	}
	return text
}
