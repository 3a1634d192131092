// Package ratelimit enforces per-caller fixed-window request limits.
//
// Three independently configured policies run as chained middleware
// stages (general, api, content). Each stage keeps its own counter per
// caller key and increments it for every request that reaches the stage,
// including requests a later, stricter stage rejects. On counter-store
// failure the limiter fails open: the request proceeds and the error is
// logged.
package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Policy describes one rate-limit stage.
type Policy struct {
	Name    string        // identifies the policy in rejection messages
	Max     int           // requests allowed per window
	Window  time.Duration // fixed window length
	Message string        // returned to the caller on rejection
}

// CounterStore tracks per-key request counts within fixed windows.
// Implementations must be safe for concurrent use.
type CounterStore interface {
	// Incr increments the counter for key, starting a new window if none
	// is active, and returns the new count and the time until reset.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, resetIn time.Duration, err error)
}

// Limiter applies a single policy as HTTP middleware.
type Limiter struct {
	store  CounterStore
	policy Policy
}

// New creates a Limiter for the given policy backed by store.
func New(store CounterStore, policy Policy) *Limiter {
	if policy.Message == "" {
		policy.Message = fmt.Sprintf("Too many requests, %s rate limit exceeded. Please try again later.", policy.Name)
	}
	return &Limiter{store: store, policy: policy}
}

// Middleware enforces the policy and attaches quota headers to every
// response, accepted or rejected.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := l.policy.Name + ":" + ClientKey(r)

		count, resetIn, err := l.store.Incr(r.Context(), key, l.policy.Window)
		if err != nil {
			// Fail open: a counter-store outage must not take down the API.
			// The true count is unknown, so advertise a full quota.
			log.Printf("ratelimit: %s policy check failed, allowing request: %v", l.policy.Name, err)
			l.setQuotaHeaders(w, int64(l.policy.Max), l.policy.Window)
			next.ServeHTTP(w, r)
			return
		}

		remaining := int64(l.policy.Max) - count
		if remaining < 0 {
			remaining = 0
		}
		l.setQuotaHeaders(w, remaining, resetIn)

		if count > int64(l.policy.Max) {
			w.Header().Set("Retry-After", strconv.Itoa(int(resetIn.Seconds())+1))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{
				"error":   "rate_limit_exceeded",
				"message": l.policy.Message,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) setQuotaHeaders(w http.ResponseWriter, remaining int64, resetIn time.Duration) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.policy.Max))
	w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(resetIn).Unix(), 10))
}

// ClientKey derives the caller identity used for counting: an API key
// when supplied, otherwise the caller IP.
func ClientKey(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}

	// First hop of X-Forwarded-For when running behind a proxy.
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// MemoryStore is an in-process CounterStore. It serves tests and
// deployments without Redis; counters reset on process restart.
type MemoryStore struct {
	mu        sync.Mutex
	windows   map[string]*fixedWindow
	now       func() time.Time
	lastPrune time.Time
}

type fixedWindow struct {
	start  time.Time
	window time.Duration
	count  int64
}

const pruneInterval = time.Minute

// NewMemoryStore creates an empty in-memory counter store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*fixedWindow),
		now:     time.Now,
	}
}

// Incr implements CounterStore with a mutex-guarded map of windows.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)

	w, ok := s.windows[key]
	if !ok || now.Sub(w.start) >= window {
		w = &fixedWindow{start: now, window: window, count: 0}
		s.windows[key] = w
	}
	w.count++

	resetIn := w.start.Add(window).Sub(now)
	return w.count, resetIn, nil
}

// pruneLocked drops expired windows so keys for callers that never
// return do not accumulate. Runs at most once per pruneInterval.
func (s *MemoryStore) pruneLocked(now time.Time) {
	if now.Sub(s.lastPrune) < pruneInterval {
		return
	}
	s.lastPrune = now

	for key, w := range s.windows {
		if now.Sub(w.start) >= w.window {
			delete(s.windows, key)
		}
	}
}
