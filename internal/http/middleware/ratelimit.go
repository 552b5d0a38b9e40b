// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements a process-local token-bucket rate limiter with one
// bucket per client identity and opportunistic eviction of idle buckets.
// It provides edge-level abuse control for the items API; for horizontally
// scaled deployments a shared store (e.g. Redis) would be needed to
// enforce a global limit.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// bucketTTL is how long an idle bucket survives before eviction.
	bucketTTL = 10 * time.Minute
	// evictEvery is the number of lookups between eviction sweeps.
	evictEvery = 5000
)

// keyFunc maps a request to the identity owning its rate-limit bucket.
// The returned key must be stable for the duration of the request.
type keyFunc func(*gin.Context) string

// KeyByIP keys buckets by client IP. Keys carry a namespace prefix so
// other identity schemes can share the same limiter map later.
func KeyByIP() keyFunc {
	return func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}
}

// bucket pairs a limiter with the last time its key was seen.
type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a per-key token-bucket limit.
//
// Buckets are created on demand in a mutex-guarded map. Idle buckets are
// swept during lookups, keeping memory bounded without a background
// goroutine. Safe for concurrent use.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	keyFn keyFunc

	mu      sync.Mutex
	buckets map[string]*bucket
	lookups uint64
}

// NewRateLimiter builds a limiter replenishing rps tokens per second with
// the given burst capacity, keyed by keyFn. A burst below 1 is coerced
// to 1 so every key can make at least one request.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		keyFn:   keyFn,
		buckets: make(map[string]*bucket),
	}
}

// bucketFor returns the limiter for key, creating it if absent. Every
// evictEvery lookups it sweeps idle buckets first, so a stale entry for
// the requested key is evicted rather than refreshed.
func (rl *RateLimiter) bucketFor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.lookups++
	if rl.lookups >= evictEvery {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) >= bucketTTL {
				delete(rl.buckets, k)
			}
		}
		rl.lookups = 0
	}

	if b, ok := rl.buckets[key]; ok {
		b.lastSeen = now
		return b.lim
	}

	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.buckets[key] = &bucket{lim: lim, lastSeen: now}
	return lim
}

// Handler returns the Gin middleware enforcing the limit. Rejected
// requests get a 429 in the standard error body shape plus a minimal
// Retry-After header.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.bucketFor(rl.keyFn(c)).Allow() {
			c.Next()
			return
		}

		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"status":     "error",
			"statusCode": http.StatusTooManyRequests,
			"message":    "Too many requests",
		})
	}
}
