package catalog

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ticket-tix/internal/infra/logx"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Limit defines a simple rate limit: RPS with a burst capacity.
type Limit struct {
	RPS   float64
	Burst int
}

// TransportOptions configures the rate-limited transport.
type TransportOptions struct {
	// RetryMax applies to GET/HEAD only. The default is 0: failed browse
	// requests are re-triggered by the user, not by the client.
	RetryMax    int
	BackoffBase time.Duration
	BackoffCap  time.Duration
	JitterFn    func(base time.Duration, attempt int) time.Duration
	Clock       Clock
	Metrics     *Metrics

	// Limit applies per request host.
	Limit Limit
}

// DefaultTransportOptions returns defaults suitable for the catalog service.
func DefaultTransportOptions() TransportOptions {
	return TransportOptions{
		RetryMax:    0,
		BackoffBase: 250 * time.Millisecond,
		BackoffCap:  5 * time.Second,
		Clock:       realClock{},
		JitterFn: func(base time.Duration, _ int) time.Duration {
			if base <= 0 {
				return 0
			}
			return time.Duration(rand.Int63n(base.Nanoseconds()))
		},
		Metrics: NewMetrics(),
		Limit:   Limit{RPS: 10, Burst: 10},
	}
}

// tokenBucket is a simple per-host rate limiter with fractional tokens.
type tokenBucket struct {
	mu     sync.Mutex
	rps    float64
	burst  float64
	tokens float64
	last   time.Time
	clock  Clock
}

func newTokenBucket(lim Limit, clock Clock) *tokenBucket {
	if lim.RPS <= 0 {
		lim.RPS = 10
	}
	burst := float64(max(1, lim.Burst))
	return &tokenBucket{rps: lim.RPS, burst: burst, tokens: burst, last: clock.Now(), clock: clock}
}

func (tb *tokenBucket) refillLocked(now time.Time) {
	delta := now.Sub(tb.last).Seconds() * tb.rps
	if delta > 0 {
		tb.tokens = math.Min(tb.burst, tb.tokens+delta)
		tb.last = now
	}
}

// Wait blocks until a token is available or ctx is done.
func (tb *tokenBucket) Wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tb.mu.Lock()
		tb.refillLocked(tb.clock.Now())
		if tb.tokens >= 1 {
			tb.tokens--
			tb.mu.Unlock()
			return nil
		}
		wait := time.Duration(((1 - tb.tokens) / tb.rps) * float64(time.Second))
		tb.mu.Unlock()
		if wait <= 0 {
			wait = 5 * time.Millisecond
		}
		// sleep in small steps so cancellation is observed; fake clocks advance immediately
		deadline := tb.clock.Now().Add(wait)
		for tb.clock.Now().Before(deadline) {
			if err := ctx.Err(); err != nil {
				return err
			}
			tb.clock.Sleep(5 * time.Millisecond)
		}
	}
}

// LimiterTransport wraps a base RoundTripper with per-host rate limiting,
// request ids, request logging and metrics.
type LimiterTransport struct {
	Base     http.RoundTripper
	Opts     TransportOptions
	limMu    sync.Mutex
	limiters map[string]*tokenBucket
}

func NewLimiterTransport(opts TransportOptions) *LimiterTransport {
	return &LimiterTransport{Opts: opts, limiters: make(map[string]*tokenBucket)}
}

func (t *LimiterTransport) getLimiter(host string) *tokenBucket {
	if host == "" {
		host = "_default_"
	}
	t.limMu.Lock()
	defer t.limMu.Unlock()
	if tb, ok := t.limiters[host]; ok {
		return tb
	}
	tb := newTokenBucket(t.Opts.Limit, t.clock())
	t.limiters[host] = tb
	return tb
}

func (t *LimiterTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *LimiterTransport) clock() Clock {
	if t.Opts.Clock != nil {
		return t.Opts.Clock
	}
	return realClock{}
}

func (t *LimiterTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request
	req = req.Clone(req.Context())
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	rid := req.Header.Get(RequestIDHeader)

	lim := t.getLimiter(req.URL.Host)
	if t.Opts.Metrics != nil {
		t.Opts.Metrics.IncRequest(req.URL.Host, req.Method)
	}

	attempts := 1
	if idempotent(req.Method) {
		attempts = max(1, t.Opts.RetryMax+1)
	}
	start := t.clock().Now()
	for attempt := 0; attempt < attempts; attempt++ {
		if err := lim.Wait(req.Context()); err != nil {
			return nil, err
		}

		resp, err := t.base().RoundTrip(req)
		if err != nil {
			if isTransientNetErr(err) && attempt < attempts-1 {
				t.noteRetry(0)
				t.sleepBackoff(attempt)
				continue
			}
			logx.Log(logx.LevelWarn, "http request failed", map[string]any{
				"request_id": rid, "method": req.Method, "path": req.URL.RequestURI(), "error": err.Error(),
			})
			return nil, err
		}
		if t.Opts.Metrics != nil {
			t.Opts.Metrics.IncStatus(resp.StatusCode)
		}

		if shouldRetryStatus(resp.StatusCode) && attempt < attempts-1 {
			resp.Body.Close()
			if ra := parseRetryAfter(resp.Header.Get("Retry-After"), t.clock().Now()); ra > 0 {
				d := minDur(ra, t.backoffCap())
				t.noteRetry(d)
				t.clock().Sleep(d)
				continue
			}
			t.noteRetry(0)
			t.sleepBackoff(attempt)
			continue
		}

		logx.Log(logx.LevelDebug, "http request", map[string]any{
			"request_id":  rid,
			"method":      req.Method,
			"path":        req.URL.RequestURI(),
			"status":      resp.StatusCode,
			"attempts":    attempt + 1,
			"duration_ms": t.clock().Now().Sub(start).Milliseconds(),
		})
		return resp, nil
	}
	return nil, errors.New("max retries exceeded")
}

func (t *LimiterTransport) noteRetry(d time.Duration) {
	if t.Opts.Metrics == nil {
		return
	}
	t.Opts.Metrics.IncRetry()
	if d > 0 {
		t.Opts.Metrics.AddBackoff(d)
	}
}

func (t *LimiterTransport) backoffCap() time.Duration {
	if t.Opts.BackoffCap > 0 {
		return t.Opts.BackoffCap
	}
	return 5 * time.Second
}

func (t *LimiterTransport) sleepBackoff(attempt int) {
	base := t.Opts.BackoffBase
	if base <= 0 {
		base = 250 * time.Millisecond
	}
	// exponential backoff: base * 2^attempt
	delay := minDur(time.Duration(float64(base)*math.Pow(2, float64(attempt))), t.backoffCap())
	if t.Opts.JitterFn != nil {
		delay = minDur(delay+t.Opts.JitterFn(delay, attempt), t.backoffCap())
	}
	t.clock().Sleep(delay)
	if t.Opts.Metrics != nil {
		t.Opts.Metrics.AddBackoff(delay)
	}
}

func idempotent(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

func isTransientNetErr(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") || strings.Contains(msg, "temporary")
}

func shouldRetryStatus(code int) bool {
	return code == 429 || code == 502 || code == 503 || code == 504
}

func parseRetryAfter(h string, now time.Time) time.Duration {
	h = strings.TrimSpace(h)
	if h == "" {
		return 0
	}
	// Integer seconds
	if secs, err := strconv.Atoi(h); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	// HTTP-date
	if when, err := http.ParseTime(h); err == nil {
		d := when.Sub(now)
		if d < 0 {
			return 0
		}
		return d
	}
	return 0
}

func minDur(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
