package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"eventregistration/internal/delivery/http/helpers"
)

const (
	limiterTTL      = 15 * time.Minute
	cleanupInterval = 5 * time.Minute
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore keeps one token bucket per client address.
type limiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	perMinute int
}

func newLimiterStore(perMinute int) *limiterStore {
	return &limiterStore{limiters: make(map[string]*limiterEntry), perMinute: perMinute}
}

func (s *limiterStore) limiter(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.limiters[key]; ok {
		e.lastSeen = now
		return e.limiter
	}
	l := rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMinute)), s.perMinute)
	s.limiters[key] = &limiterEntry{limiter: l, lastSeen: now}
	return l
}

func (s *limiterStore) cleanup(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.limiters {
		if now.Sub(e.lastSeen) > limiterTTL {
			delete(s.limiters, key)
		}
	}
}

func (s *limiterStore) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			s.cleanup(now)
		case <-ctx.Done():
			return
		}
	}
}

// RateLimit allows each client address perMinute requests per minute (with an
// equal burst) on mutating requests. Reads pass through. A perMinute of 0 or
// less disables limiting. The cleanup goroutine stops when ctx is done.
func RateLimit(ctx context.Context, perMinute int, next http.Handler) http.Handler {
	if perMinute <= 0 {
		return next
	}
	store := newLimiterStore(perMinute)
	go store.cleanupLoop(ctx)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		if !store.limiter(clientKey(r), time.Now()).Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(perMinute)))
			helpers.WriteJSONError(w, http.StatusTooManyRequests, helpers.ErrCodeRateLimited, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func retryAfterSeconds(perMinute int) int {
	secs := 60 / perMinute
	if secs < 1 {
		return 1
	}
	return secs
}

// clientKey is the connection's remote IP. Forwarded headers are ignored so
// clients cannot pick their own bucket.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
