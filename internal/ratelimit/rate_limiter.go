// rate_limiter.go - Rate limiting for the classification endpoint

package ratelimit

import (
	"sync"
	"time"
)

// RateLimiter implements a simple token bucket rate limiter
type RateLimiter struct {
	tokens         int
	maxTokens      int
	refillRate     time.Duration
	lastRefillTime time.Time
	mu             sync.Mutex
}

// NewRateLimiter creates a limiter allowing maxPerMinute requests, refilling
// one token per interval
func NewRateLimiter(maxPerMinute int) *RateLimiter {
	if maxPerMinute < 1 {
		maxPerMinute = 1
	}
	return &RateLimiter{
		tokens:         maxPerMinute,
		maxTokens:      maxPerMinute,
		refillRate:     time.Minute / time.Duration(maxPerMinute),
		lastRefillTime: time.Now(),
	}
}

// Allow consumes one token if available and reports whether the request may
// proceed
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}
	return false
}

// refill adds tokens accrued since the last refill. Caller must hold mu.
func (rl *RateLimiter) refill() {
	elapsed := time.Since(rl.lastRefillTime)
	refills := int(elapsed / rl.refillRate)
	if refills <= 0 {
		return
	}

	rl.tokens += refills
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefillTime = rl.lastRefillTime.Add(time.Duration(refills) * rl.refillRate)
}
