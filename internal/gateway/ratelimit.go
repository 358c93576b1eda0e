package gateway

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Budget tracks the remaining remote rate-limit allowance as observed from
// response headers. It is shared by every component issuing requests through
// one identity and is passed in explicitly, never held as a process-wide
// singleton. Tracking is reactive: the gateway never throttles below the
// limit preemptively.
type Budget struct {
	mu        sync.Mutex
	remaining int
	reset     time.Time
	observed  bool
}

// NewBudget creates an empty budget tracker.
func NewBudget() *Budget {
	return &Budget{}
}

// Observe records the remaining allowance and reset time from a response.
func (b *Budget) Observe(remaining int, reset time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.remaining = remaining
	b.reset = reset
	b.observed = true
}

// Snapshot returns the last observed allowance. ok is false until the first
// response has been observed.
func (b *Budget) Snapshot() (remaining int, reset time.Time, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remaining, b.reset, b.observed
}

func parseRateHeaders(h http.Header) (remaining int, reset time.Time, retryAfter int) {
	remaining = atoi(h.Get("X-RateLimit-Remaining"))
	rs := h.Get("X-RateLimit-Reset")
	if rs != "" {
		sec := atoi(rs)
		if sec > 0 {
			reset = time.Unix(int64(sec), 0).UTC()
		}
	}
	retryAfter = atoi(h.Get("Retry-After"))
	return
}

// computeWait decides how long to wait before retrying a rate-limited
// request based on headers. Zero means the headers gave no usable hint and
// the caller should fall back to exponential backoff.
func computeWait(reset time.Time, retryAfter int, now time.Time) time.Duration {
	if retryAfter > 0 {
		return time.Duration(retryAfter) * time.Second
	}
	if !reset.IsZero() && reset.After(now) {
		return reset.Sub(now)
	}
	return 0
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	i, _ := strconv.Atoi(s)
	return i
}
