package http

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	apperrors "github.com/allisson/idvault/internal/errors"
	"github.com/allisson/idvault/internal/httputil"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTTL         = time.Hour
)

// limiterStore keeps one token bucket per key and evicts buckets idle for limiterIdleTTL.
type limiterStore[K comparable] struct {
	mu       sync.Mutex
	limiters map[K]*limiterEntry
	rps      float64
	burst    int
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func newLimiterStore[K comparable](rps float64, burst int) *limiterStore[K] {
	return &limiterStore[K]{
		limiters: make(map[K]*limiterEntry),
		rps:      rps,
		burst:    burst,
	}
}

func (s *limiterStore[K]) get(key K) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(s.rps), s.burst)}
		s.limiters[key] = entry
	}
	entry.lastAccess = time.Now()
	return entry.limiter
}

func (s *limiterStore[K]) evictIdle(threshold time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(s.limiters, key)
		}
	}
}

func (s *limiterStore[K]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// runCleanup evicts idle limiters every interval until ctx is done.
func (s *limiterStore[K]) runCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle(time.Now().Add(-limiterIdleTTL))
		}
	}
}

// allow consumes a token. When the bucket is empty it writes 429 with Retry-After and aborts.
func allow(c *gin.Context, limiter *rate.Limiter, message string) bool {
	if limiter.Allow() {
		return true
	}

	reservation := limiter.Reserve()
	retryAfter := int(math.Ceil(reservation.Delay().Seconds()))
	reservation.Cancel()
	if retryAfter < 1 {
		retryAfter = 1
	}

	c.Header("Retry-After", strconv.Itoa(retryAfter))
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":   "rate_limit_exceeded",
		"message": message,
	})
	c.Abort()
	return false
}

// RateLimitMiddleware enforces a per-client token bucket on authenticated routes.
// It must run after AuthenticationMiddleware. Stale buckets are evicted until ctx is done.
func RateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore[uuid.UUID](rps, burst)
	go store.runCleanup(ctx, limiterCleanupInterval)

	return func(c *gin.Context) {
		client, ok := GetClient(c.Request.Context())
		if !ok {
			logger.Error("rate limit middleware: no authenticated client in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !allow(c, store.get(client.ID), "Too many requests. Please retry after the specified delay.") {
			logger.Debug("rate limit exceeded", slog.String("client_id", client.ID.String()))
			return
		}
		c.Next()
	}
}

// TokenRateLimitMiddleware enforces a per-IP token bucket on the unauthenticated token endpoint.
func TokenRateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore[string](rps, burst)
	go store.runCleanup(ctx, limiterCleanupInterval)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if !allow(c, store.get(clientIP), "Too many token requests from this IP. Please retry after the specified delay.") {
			logger.Debug("token rate limit exceeded", slog.String("client_ip", clientIP))
			return
		}
		c.Next()
	}
}
