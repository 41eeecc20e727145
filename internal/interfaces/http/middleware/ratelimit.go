package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/RobertWLight/BSC/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RateLimiter counts requests per key in fixed windows. Idle keys are
// swept in the background until Stop is called.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu       sync.Mutex
	counters map[string]*windowCounter

	done     chan struct{}
	stopOnce sync.Once
}

type windowCounter struct {
	start time.Time
	count int
}

// NewRateLimiter allows limit requests per key per window
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return newRateLimiter(limit, window, time.Now)
}

func newRateLimiter(limit int, window time.Duration, now func() time.Time) *RateLimiter {
	rl := &RateLimiter{
		limit:    limit,
		window:   window,
		now:      now,
		counters: make(map[string]*windowCounter),
		done:     make(chan struct{}),
	}
	go rl.sweep(2 * window)
	return rl
}

// Stop ends the background sweep
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// Limit returns the per-window request allowance
func (rl *RateLimiter) Limit() int {
	return rl.limit
}

// Take counts one request for key. It reports whether the request fits in
// the current window, how many remain, and when the window resets.
func (rl *RateLimiter) Take(key string) (ok bool, remaining int, reset time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, found := rl.counters[key]
	if !found || now.Sub(w.start) >= rl.window {
		w = &windowCounter{start: now}
		rl.counters[key] = w
	}
	reset = w.start.Add(rl.window)

	if w.count >= rl.limit {
		return false, 0, reset
	}
	w.count++
	return true, rl.limit - w.count, reset
}

func (rl *RateLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
		}

		rl.mu.Lock()
		now := rl.now()
		for key, w := range rl.counters {
			if now.Sub(w.start) >= rl.window {
				delete(rl.counters, key)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimit limits requests per client IP. Rejected requests get 429
// ERR_RATE_LIMITED with a Retry-After header.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	limit := strconv.Itoa(limiter.Limit())
	return func(c *gin.Context) {
		ok, remaining, reset := limiter.Take(c.ClientIP())
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !ok {
			wait := int(math.Ceil(time.Until(reset).Seconds()))
			if wait < 1 {
				wait = 1
			}
			c.Header("Retry-After", strconv.Itoa(wait))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited,
				"Too many requests. Please try again later.",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}
