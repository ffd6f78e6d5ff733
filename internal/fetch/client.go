package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"jobscout/internal/logging"
)

// FetchError kinds
const (
	KindTimeout         = "timeout"
	KindHTTPError       = "http_error"
	KindConnectionError = "connection_error"
)

// FetchError is the typed failure returned by the fetch primitive.
// Adapters treat any FetchError as "this page contributed zero postings".
type FetchError struct {
	Kind   string
	Status int
	URL    string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Kind == KindHTTPError {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Options configures a fetch client for one source.
type Options struct {
	// Delay is the minimum politeness interval between requests issued by
	// this client instance. Stricter sources get longer delays.
	Delay      time.Duration
	Timeout    time.Duration
	MaxRetries int
	UserAgent  string
	// Cookie, when set, is sent verbatim as the Cookie header. Used by the
	// university board client for sites behind institutional login.
	Cookie string
	// ExtraHeaders are merged over the default browser-like header set.
	ExtraHeaders map[string]string
}

// Client fetches page text with per-instance rate limiting, a bounded
// timeout and a small retry budget. The delay state is instance-scoped:
// two clients for the same source do not coordinate.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	headers    map[string]string
	maxRetries int
	delay      time.Duration
	mu         sync.Mutex
	logger     logging.Logger
}

// NewClient creates a fetch client for one source.
func NewClient(opts Options) *Client {
	if opts.Delay <= 0 {
		opts.Delay = 2 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}

	headers := map[string]string{
		"User-Agent":      opts.UserAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Connection":      "keep-alive",
	}
	if opts.Cookie != "" {
		headers["Cookie"] = opts.Cookie
	}
	for k, v := range opts.ExtraHeaders {
		headers[k] = v
	}

	return &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		limiter:    rate.NewLimiter(rate.Every(opts.Delay), 1),
		headers:    headers,
		maxRetries: opts.MaxRetries,
		delay:      opts.Delay,
		logger:     logging.GetGlobalLogger(),
	}
}

// Get fetches the URL with the given query parameters and returns the
// response body as text. Failures come back as *FetchError.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) (string, error) {
	target := rawURL
	if len(params) > 0 {
		sep := "?"
		if u, err := url.Parse(rawURL); err == nil && u.RawQuery != "" {
			sep = "&"
		}
		target = rawURL + sep + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &FetchError{Kind: KindConnectionError, URL: target, Err: err}
		}

		body, retry, err := c.doRequest(ctx, target, attempt)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry {
			return "", err
		}
	}

	return "", lastErr
}

// doRequest issues a single request. The second return value reports
// whether the failure is worth retrying.
func (c *Client) doRequest(ctx context.Context, target string, attempt int) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", false, &FetchError{Kind: KindConnectionError, URL: target, Err: err}
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := KindConnectionError
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			kind = KindTimeout
		}
		c.logger.Debug("fetch attempt failed", map[string]interface{}{
			"url": target, "attempt": attempt, "error": err.Error(),
		})
		return "", true, &FetchError{Kind: kind, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		fe := &FetchError{Kind: KindHTTPError, Status: resp.StatusCode, URL: target}
		switch resp.StatusCode {
		case http.StatusForbidden:
			// Likely blocked; slow this client down for the rest of the run.
			c.backOff(2)
			return "", true, fe
		case http.StatusTooManyRequests:
			c.sleep(ctx, c.currentDelay()*time.Duration(attempt+1)*2)
			return "", true, fe
		default:
			return "", false, fe
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, &FetchError{Kind: KindConnectionError, URL: target, Err: err}
	}

	return string(data), false, nil
}

// backOff multiplies the politeness delay, tightening the rate limiter.
func (c *Client) backOff(factor int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delay *= time.Duration(factor)
	c.limiter.SetLimit(rate.Every(c.delay))
	c.logger.Warn("fetch client backing off", map[string]interface{}{
		"new_delay": c.delay.String(),
	})
}

func (c *Client) currentDelay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delay
}

func (c *Client) sleep(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
