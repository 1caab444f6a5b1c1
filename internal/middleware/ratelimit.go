package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/joshuabarraza/Trip-API/internal/errors"
)

// RateLimiter is a fixed-window in-memory request limiter. Each identity
// (bearer token when present, client IP otherwise) gets an independent
// per-minute budget.
type RateLimiter struct {
	mu          sync.Mutex
	perMinute   int
	clients     map[string]*clientWindow
	stopCleanup chan struct{}
	stopOnce    sync.Once

	// now is overridable in tests.
	now func() time.Time
}

type clientWindow struct {
	windowStart time.Time
	requests    int
}

// NewRateLimiter creates a limiter allowing perMinute requests per identity
// and starts a background sweeper for stale entries.
func NewRateLimiter(perMinute int) *RateLimiter {
	rl := &RateLimiter{
		perMinute:   perMinute,
		clients:     make(map[string]*clientWindow),
		stopCleanup: make(chan struct{}),
		now:         time.Now,
	}
	go rl.cleanupLoop()
	return rl
}

// Middleware returns the Gin handler enforcing the limit. The identity is
// the presented bearer token, falling back to the client address, so the
// limit applies per caller rather than per route.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := BearerToken(c)
		if !ok || key == "" {
			key = c.ClientIP()
		}

		if !rl.Allow(key) {
			abortWithAppError(c, apperrors.ErrRateLimited)
			return
		}

		c.Next()
	}
}

// Allow records a request for the identity and reports whether it fits in
// the current one-minute window.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	client, exists := rl.clients[key]

	if !exists || now.Sub(client.windowStart) >= time.Minute {
		rl.clients[key] = &clientWindow{windowStart: now, requests: 1}
		return true
	}

	client.requests++
	return client.requests <= rl.perMinute
}

// Stop shuts down the background sweeper.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.removeStale()
		case <-rl.stopCleanup:
			return
		}
	}
}

// removeStale drops identities whose window closed more than ten minutes ago.
func (rl *RateLimiter) removeStale() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-10 * time.Minute)
	for key, client := range rl.clients {
		if client.windowStart.Before(cutoff) {
			delete(rl.clients, key)
		}
	}
}
