package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned, as CodeResourceExhausted, once a caller has
// used up its burst.
var ErrRateLimited = errors.New("Muitas requisições. Tente novamente em instantes.")

// maxLimiters bounds the limiter map between cleanups.
const maxLimiters = 10000

// RateLimiter applies a token bucket per caller.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
}

// NewRateLimiter creates a new rate limiter allowing requestsPerSecond
// with the given burst to each caller.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// getLimiter returns a rate limiter for the given key (user ID or peer address).
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}

	return limiter
}

// Interceptor rejects calls over the caller's budget. Callers are keyed by
// user ID when authenticated and by peer host otherwise.
func (rl *RateLimiter) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			key := callerKey(ctx, req.Peer().Addr)
			if !rl.getLimiter(key).Allow() {
				slog.Warn("Rate limit exceeded", "key", key, "procedure", req.Spec().Procedure)
				return nil, connect.NewError(connect.CodeResourceExhausted, ErrRateLimited)
			}
			return next(ctx, req)
		}
	}
}

// callerKey drops the port from anonymous peers so reconnecting does not
// buy a fresh bucket.
func callerKey(ctx context.Context, peerAddr string) string {
	if userID := GetUserID(ctx); userID != "" {
		return "user:" + userID
	}
	return "peer:" + peerHost(peerAddr)
}

// peerHost strips the port from a peer address; addresses without one are
// returned as is.
func peerHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

// Cleanup drops every limiter once the map grows past maxLimiters.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if len(rl.limiters) > maxLimiters {
		rl.limiters = make(map[string]*rate.Limiter)
	}
}

// StartCleanup runs Cleanup every interval until ctx is done.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup()
			}
		}
	}()
}
