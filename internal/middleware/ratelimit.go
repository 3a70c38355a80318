package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/JonnyWalker81/vibecheck/backend/internal/apierror"
	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
	"github.com/JonnyWalker81/vibecheck/backend/internal/metrics"
)

// idleTimeout is how long a client's bucket is kept after its last request
const idleTimeout = 10 * time.Minute

// RateLimiter provides token bucket rate limiting per client IP
type RateLimiter struct {
	clients map[string]*clientInfo
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	name    string
	done    chan struct{}
	stop    sync.Once
}

type clientInfo struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a limiter allowing perMinute requests per minute per IP,
// with bursts up to the same amount. name identifies the limiter in logs and metrics.
func NewRateLimiter(perMinute int, name string) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	rl := &RateLimiter{
		clients: make(map[string]*clientInfo),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
		name:    name,
		done:    make(chan struct{}),
	}

	go rl.cleanupLoop(idleTimeout)

	logger.Default().Debug("rate limiter initialized",
		logger.String("name", name),
		logger.Int("per_minute", perMinute),
	)
	return rl
}

// Stop ends the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stop.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.done:
			return
		}
	}
}

// cleanup removes clients idle for longer than idleTimeout
func (rl *RateLimiter) cleanup(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cleaned := 0
	for ip, info := range rl.clients {
		if now.Sub(info.lastSeen) > idleTimeout {
			delete(rl.clients, ip)
			cleaned++
		}
	}
	if cleaned > 0 {
		logger.Default().Debug("rate limiter cleanup completed",
			logger.String("name", rl.name),
			logger.Int("cleaned", cleaned),
			logger.Int("remaining", len(rl.clients)),
		)
	}
	return cleaned
}

// isAllowed consumes a token for ip. When none is available it reports how
// long until the next one.
func (rl *RateLimiter) isAllowed(ip string) (bool, time.Duration) {
	now := time.Now()

	rl.mu.Lock()
	info, ok := rl.clients[ip]
	if !ok {
		info = &clientInfo{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = info
	}
	info.lastSeen = now
	limiter := info.limiter
	rl.mu.Unlock()

	r := limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Middleware returns the gin handler enforcing the limit
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		allowed, wait := rl.isAllowed(ip)
		if !allowed {
			retryAfter := int(math.Ceil(wait.Seconds()))
			logger.FromContext(c.Request.Context()).Warn("rate limit exceeded",
				logger.String("limiter", rl.name),
				logger.String("client_ip", ip),
				logger.Int("retry_after", retryAfter),
			)
			metrics.RateLimitedTotal.WithLabelValues(rl.name).Inc()

			c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
			c.Header("X-RateLimit-Remaining", "0")
			apierror.WriteProblem(c, apierror.NewRateLimitError(apierror.GetRequestID(c), retryAfter))
			return
		}

		c.Next()
	}
}
