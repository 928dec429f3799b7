package handlers

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"lawFirmWebsite/internal/utils"
)

// RateLimiter implements a token bucket rate limiter keyed by client IP
type RateLimiter struct {
	rate       time.Duration
	capacity   int
	tokens     map[string]*TokenBucket
	mutex      sync.Mutex
	cleanupTtl time.Duration
	now        func() time.Time
}

// TokenBucket represents a token bucket for a specific client
type TokenBucket struct {
	tokens     int
	lastRefill time.Time
	mutex      sync.Mutex
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(requestsPerMinute int, burstCapacity int) *RateLimiter {
	return &RateLimiter{
		rate:       time.Minute / time.Duration(requestsPerMinute),
		capacity:   burstCapacity,
		tokens:     make(map[string]*TokenBucket),
		cleanupTtl: 10 * time.Minute,
		now:        time.Now,
	}
}

// Allow checks if a request from the given IP should be allowed
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mutex.Lock()
	bucket, exists := rl.tokens[ip]
	if !exists {
		bucket = &TokenBucket{tokens: rl.capacity, lastRefill: rl.now()}
		rl.tokens[ip] = bucket
	}
	rl.mutex.Unlock()

	return bucket.takeToken(rl.now(), rl.rate, rl.capacity)
}

// takeToken attempts to take a token from the bucket
func (tb *TokenBucket) takeToken(now time.Time, refillRate time.Duration, capacity int) bool {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tokensToAdd := int(now.Sub(tb.lastRefill) / refillRate)
	if tokensToAdd > 0 {
		tb.tokens += tokensToAdd
		if tb.tokens > capacity {
			tb.tokens = capacity
		}
		tb.lastRefill = tb.lastRefill.Add(time.Duration(tokensToAdd) * refillRate)
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// StartCleanupRoutine drops idle buckets every five minutes until ctx is done.
func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.cleanup()
			}
		}
	}()
}

func (rl *RateLimiter) cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for ip, bucket := range rl.tokens {
		bucket.mutex.Lock()
		lastActivity := bucket.lastRefill
		bucket.mutex.Unlock()

		if now.Sub(lastActivity) > rl.cleanupTtl {
			delete(rl.tokens, ip)
		}
	}
}

// RateLimitMiddleware creates HTTP middleware for rate limiting
func (s *Server) RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getRealIP(r)

			if !limiter.Allow(ip) {
				s.Logger.WithFields(map[string]interface{}{
					"ip":     ip,
					"method": r.Method,
					"path":   r.URL.Path,
				}).Warn("Rate limit exceeded")

				utils.RespondWithError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getRealIP extracts the client IP, honouring proxy headers
func getRealIP(r *http.Request) string {
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
