package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/config"
)

const (
	clientIdleTimeout      = 30 * time.Minute
	clientCleanupInterval  = 10 * time.Minute
	TooManyRequestsMessage = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요."
)

// clientLimiter stores the rate limiter for a specific client.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterMiddleware applies a per-client token bucket to page requests.
type RateLimiterMiddleware struct {
	clients map[string]*clientLimiter
	mu      sync.Mutex
	rate    rate.Limit
	burst   int
	log     *zap.Logger
	now     func() time.Time
}

// NewRateLimiterMiddleware creates a RateLimiterMiddleware from the configured bucket.
// Stale client entries are removed until stop is closed.
func NewRateLimiterMiddleware(cfg *config.Config, log *zap.Logger, stop <-chan struct{}) *RateLimiterMiddleware {
	if log == nil {
		log = zap.NewNop()
	}
	rm := &RateLimiterMiddleware{
		clients: make(map[string]*clientLimiter),
		rate:    rate.Limit(cfg.RateLimitRefillRate),
		burst:   cfg.RateLimitBucketSize,
		log:     log,
		now:     time.Now,
	}
	go rm.cleanupClients(stop)
	return rm
}

// getClientLimiter retrieves or creates the limiter for a given client identifier.
func (rm *RateLimiterMiddleware) getClientLimiter(identifier string) *clientLimiter {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	cl, exists := rm.clients[identifier]
	if !exists {
		cl = &clientLimiter{limiter: rate.NewLimiter(rm.rate, rm.burst)}
		rm.clients[identifier] = cl
	}
	cl.lastSeen = rm.now()
	return cl
}

// removeIdleClients drops clients not seen within clientIdleTimeout and returns how many were removed.
func (rm *RateLimiterMiddleware) removeIdleClients() int {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	count := 0
	now := rm.now()
	for id, cl := range rm.clients {
		if now.Sub(cl.lastSeen) > clientIdleTimeout {
			delete(rm.clients, id)
			count++
		}
	}
	return count
}

func (rm *RateLimiterMiddleware) cleanupClients(stop <-chan struct{}) {
	ticker := time.NewTicker(clientCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if n := rm.removeIdleClients(); n > 0 {
				rm.log.Debug("rate limiter cleanup", zap.Int("removed", n))
			}
		}
	}
}

// Limit creates the Gin middleware handler.
func (rm *RateLimiterMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientKey := c.ClientIP()
		if !rm.getClientLimiter(clientKey).limiter.Allow() {
			rm.log.Warn("rate limit exceeded", zap.String("client", clientKey), zap.String("path", c.FullPath()))
			c.AbortWithStatus(http.StatusTooManyRequests)
			_, _ = c.Writer.WriteString(TooManyRequestsMessage)
			return
		}
		c.Next()
	}
}
