// Package gateway provides authenticated, paginated, rate-limit-aware access
// to the GitHub REST API. FetchPage is the sole primitive; every higher
// component pages through it and carries no HTTP knowledge of its own.
package gateway

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/y3pio/unicon/internal/log"
)

const (
	baseURLDefault   = "https://api.github.com"
	defaultTimeout   = 15 * time.Second
	defaultUA        = "unicon"
	defaultMaxRetry  = 5
	defaultRetryBase = 500 * time.Millisecond
	defaultMaxDelay  = 30 * time.Second

	maxBodyBytes = 4 << 20
	maxDiagBytes = 2048
)

// Cursor is an opaque pagination token. The gateway does not interpret its
// contents, only forwards what the API returned for the next page. An empty
// cursor requests the first page.
type Cursor string

// PageFetcher is the paging capability consumed by the enumerator and the
// extractors.
type PageFetcher interface {
	FetchPage(ctx context.Context, endpoint string, cursor Cursor) ([]json.RawMessage, Cursor, error)
}

// Options configures the Client.
type Options struct {
	BaseURL   string
	Token     string
	UserAgent string
	Timeout   time.Duration

	// Retry config for transient and rate limited responses
	MaxRetries    int
	RetryBase     time.Duration
	MaxRetryDelay time.Duration
}

// Client is a minimal GitHub REST client with reactive rate-limit handling.
type Client struct {
	http   *http.Client
	opts   Options
	budget *Budget
	now    func() time.Time
	sleep  func(time.Duration)
	jitter func(time.Duration) time.Duration
}

// NewClient creates a Client with sane defaults. The budget is shared state
// across every caller of this identity and must not be nil.
func NewClient(o Options, budget *Budget) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimSuffix(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.MaxRetryDelay <= 0 {
		o.MaxRetryDelay = defaultMaxDelay
	}
	if budget == nil {
		budget = NewBudget()
	}
	return &Client{
		http:   &http.Client{Timeout: o.Timeout},
		opts:   o,
		budget: budget,
		now:    time.Now,
		sleep:  time.Sleep,
		jitter: func(d time.Duration) time.Duration {
			if d <= 0 {
				return 0
			}
			return time.Duration(rand.Int63n(int64(d)))
		},
	}
}

// Budget returns the shared rate-limit tracker.
func (c *Client) Budget() *Budget {
	return c.budget
}

// FetchPage requests one page of the given endpoint. endpoint must be a
// relative API path (leading slash, query allowed). The returned cursor is
// non-empty when the API advertised a further page; pass it back verbatim to
// continue. The cursor is never advanced across a failed request.
func (c *Client) FetchPage(ctx context.Context, endpoint string, cursor Cursor) ([]json.RawMessage, Cursor, error) {
	url := string(cursor)
	if url == "" {
		if !strings.HasPrefix(endpoint, "/") || strings.Contains(endpoint, "://") {
			return nil, "", &StatusError{Err: ErrRequestRejected, Body: "endpoint must be a relative API path: " + endpoint}
		}
		url = c.opts.BaseURL + endpoint
	}

	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Error("gateway: close body failed: %v", cerr)
		}
	}()

	items, err := decodeItems(resp.Body)
	if err != nil {
		return nil, "", err
	}

	return items, Cursor(nextLink(resp.Header)), nil
}

// do issues the request with auth headers, retries, and rate limit handling.
func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/vnd.github+json")
		if c.opts.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.opts.Token)
		}

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if !c.shouldRetry(attempts) {
				return nil, &StatusError{Err: ErrTransientUpstream, Body: err.Error()}
			}
			back := c.backoff(attempts) + c.jitter(c.opts.RetryBase)
			log.Warn("gateway: transport error, retrying in %s (attempt %d): %v", back, attempts, err)
			c.sleep(back)
			attempts++
			continue
		}

		rem, reset, retryAfter := parseRateHeaders(resp.Header)
		c.budget.Observe(rem, reset)
		log.Debug("gateway: GET %s status=%d attempt=%d latency=%s rate_remaining=%d",
			url, resp.StatusCode, attempts, lat, rem)

		switch {
		case resp.StatusCode == http.StatusOK:
			return resp, nil

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden:
			// Respect Retry-After and X-RateLimit-Reset when present
			wait := computeWait(reset, retryAfter, c.now())
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			if !c.shouldRetry(attempts) {
				body := drainTail(resp.Body)
				return nil, &StatusError{Status: resp.StatusCode, Body: body, Err: ErrRateLimitExceeded}
			}
			log.Warn("gateway: rate limited, backing off %s", wait)
			_ = drainAndClose(resp.Body)
			c.sleep(wait)
			attempts++

		case resp.StatusCode >= 500:
			if !c.shouldRetry(attempts) {
				body := drainTail(resp.Body)
				return nil, &StatusError{Status: resp.StatusCode, Body: body, Err: ErrTransientUpstream}
			}
			back := c.backoff(attempts) + c.jitter(c.opts.RetryBase)
			log.Warn("gateway: upstream error %d, retrying in %s (attempt %d)", resp.StatusCode, back, attempts)
			_ = drainAndClose(resp.Body)
			c.sleep(back)
			attempts++

		default:
			// Remaining 4xx: fail fast, retrying cannot help
			body := drainTail(resp.Body)
			return nil, &StatusError{Status: resp.StatusCode, Body: body, Err: ErrRequestRejected}
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	// simple exponential with cap
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	capMS := int64(c.opts.MaxRetryDelay / time.Millisecond)
	if ms > capMS {
		ms = capMS
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

// decodeItems accepts both plain JSON arrays (listing endpoints) and search
// responses wrapping the page in an "items" field.
func decodeItems(r io.Reader) ([]json.RawMessage, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, "{") {
		var wrapped struct {
			Items []json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(b, &wrapped); err != nil {
			return nil, err
		}
		return wrapped.Items, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// nextLink extracts the rel="next" URL from a Link header, or "" when the
// page sequence is exhausted.
func nextLink(h http.Header) string {
	link := h.Get("Link")
	if link == "" {
		return ""
	}
	for part := range strings.SplitSeq(link, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		url := strings.Trim(strings.TrimSpace(section[0]), "<>")
		for _, param := range section[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return url
			}
		}
	}
	return ""
}

func drainTail(rc io.ReadCloser) string {
	b, _ := io.ReadAll(io.LimitReader(rc, maxDiagBytes))
	_ = rc.Close()
	return strings.TrimSpace(string(b))
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
