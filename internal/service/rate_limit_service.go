package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

type windowCounter interface {
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimitDecision reports whether a request may proceed.
type RateLimitDecision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// RateLimitService enforces a fixed one-minute window per client.
type RateLimitService struct {
	counter windowCounter
	limit   int
	scope   string
	logger  *zap.Logger
	now     func() time.Time
}

// NewRateLimitService builds a limiter allowing limit requests per minute for scope.
func NewRateLimitService(counter windowCounter, scope string, limit int, logger *zap.Logger) *RateLimitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimitService{counter: counter, limit: limit, scope: scope, logger: logger, now: time.Now}
}

// Allow counts the request against the client's current window.
// Counter failures let the request through.
func (s *RateLimitService) Allow(ctx context.Context, client string) RateLimitDecision {
	if s == nil || s.counter == nil || s.limit <= 0 {
		return RateLimitDecision{Allowed: true}
	}
	client = strings.TrimSpace(client)
	if client == "" {
		client = "unknown"
	}

	now := s.now().UTC()
	// Key: RATELIMIT:<scope>:<YYYYMMDDHHMM>:<client>
	key := fmt.Sprintf("RATELIMIT:%s:%s:%s", s.scope, now.Format("200601021504"), client)
	windowEnd := now.Truncate(time.Minute).Add(time.Minute)
	ttl := windowEnd.Sub(now)

	count, err := s.counter.Increment(ctx, key, ttl+time.Second)
	if err != nil {
		s.logger.Warn("rate limit counter unavailable", zap.String("scope", s.scope), zap.Error(err))
		return RateLimitDecision{Allowed: true}
	}
	if count > int64(s.limit) {
		return RateLimitDecision{Allowed: false, RetryAfter: ttl}
	}
	return RateLimitDecision{Allowed: true}
}
