package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// windowEntry tracks one caller's request count inside the current window
type windowEntry struct {
	count       int
	windowStart time.Time
}

// fixedWindowLimiter enforces a per-caller request ceiling over a fixed
// window. Requests beyond the ceiling are rejected outright, not queued.
type fixedWindowLimiter struct {
	entries map[string]*windowEntry
	mu      sync.Mutex
	max     int
	window  time.Duration
	stopCh  chan struct{}
}

func newFixedWindowLimiter(max int, window time.Duration) *fixedWindowLimiter {
	f := &fixedWindowLimiter{
		entries: make(map[string]*windowEntry),
		max:     max,
		window:  window,
		stopCh:  make(chan struct{}),
	}
	go f.cleanupLoop()
	return f
}

// allow counts a request against the caller's window and reports whether it
// is within the ceiling
func (f *fixedWindowLimiter) allow(key string) bool {
	now := time.Now()

	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[key]
	if !ok || now.Sub(entry.windowStart) >= f.window {
		f.entries[key] = &windowEntry{count: 1, windowStart: now}
		return true
	}

	entry.count++
	return entry.count <= f.max
}

// cleanupLoop drops expired windows so idle callers do not accumulate
func (f *fixedWindowLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			f.cleanup()
		case <-f.stopCh:
			return
		}
	}
}

func (f *fixedWindowLimiter) cleanup() {
	f.mu.Lock()
	defer f.mu.Unlock()

	cutoff := time.Now().Add(-f.window)
	for key, entry := range f.entries {
		if entry.windowStart.Before(cutoff) {
			delete(f.entries, key)
		}
	}
}

// Stop terminates the cleanup goroutine
func (f *fixedWindowLimiter) Stop() {
	close(f.stopCh)
}

// RateLimitConfig defines configuration for the API-wide rate ceiling
type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

// NewAPIRateLimitMiddleware enforces a fixed-window per-IP ceiling across
// the whole API surface
func NewAPIRateLimitMiddleware(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}

	limiter := newFixedWindowLimiter(cfg.MaxRequests, cfg.Window)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Too many requests, please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// limiterEntry holds a token-bucket limiter with last used timestamp
type limiterEntry struct {
	limiter  *rate.Limiter
	lastUsed time.Time
}

// ipRateLimiter manages per-IP token buckets with automatic cleanup
type ipRateLimiter struct {
	limiters map[string]*limiterEntry
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	stopCh   chan struct{}
}

func newIPRateLimiter(limit rate.Limit, burst int) *ipRateLimiter {
	l := &ipRateLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    limit,
		burst:    burst,
		stopCh:   make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

func (l *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[ip]
	if ok {
		entry.lastUsed = time.Now()
		return entry.limiter
	}

	limiter := rate.NewLimiter(l.limit, l.burst)
	l.limiters[ip] = &limiterEntry{limiter: limiter, lastUsed: time.Now()}
	return limiter
}

func (l *ipRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCh:
			return
		}
	}
}

// cleanup removes entries not used in the last 10 minutes
func (l *ipRateLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, entry := range l.limiters {
		if entry.lastUsed.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
}

// LoginRateLimitMiddleware throttles credential guessing on the login
// endpoint: 5 attempts per minute per IP with a small burst
func LoginRateLimitMiddleware() gin.HandlerFunc {
	limiter := newIPRateLimiter(rate.Every(time.Minute/5), 3)

	return func(c *gin.Context) {
		if !limiter.getLimiter(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Too many login attempts, please try again later",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
