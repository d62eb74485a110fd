package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Dannesh12/urban-slot-finder/pkg/response"
)

// RateLimitConfig holds per-client limits
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	// IdleTTL drops limiters for clients not seen for this long
	IdleTTL time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	config   RateLimitConfig
	now      func() time.Time
}

// NewIPRateLimiter creates a limiter with defaults for unset fields
func NewIPRateLimiter(config RateLimitConfig) *IPRateLimiter {
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = 5
	}
	if config.Burst <= 0 {
		config.Burst = 10
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = 10 * time.Minute
	}
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		config:   config,
		now:      time.Now,
	}
}

// Allow reports whether ip may make a request now
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	l.evict(now)

	return v.limiter.AllowN(now, 1)
}

// evict assumes l.mu is held
func (l *IPRateLimiter) evict(now time.Time) {
	for ip, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.config.IdleTTL {
			delete(l.visitors, ip)
		}
	}
}

// Middleware rejects requests over the limit with 429
func (l *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
