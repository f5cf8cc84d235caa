package redis

import (
	"context"
	"fmt"
	"time"

	"nexora-chat/internal/ratelimit"

	goredis "github.com/redis/go-redis/v9"
)

// Rate limiting key pattern:
// - ratelimit:{scope}:{id} - window TTL, per-window write limit

// RateLimitConfig contains configuration for rate limiting
type RateLimitConfig struct {
	Limit  int           // Max actions per window
	Window time.Duration // Rate limit window
}

// DefaultRateLimitConfig returns sensible defaults
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Limit:  60, // 60 writes per minute
		Window: 60 * time.Second,
	}
}

// RateLimiter handles rate limiting using Redis so every instance shares the
// same counters.
type RateLimiter struct {
	client *goredis.Client
	config RateLimitConfig
	script *goredis.Script
}

// Use Lua script for atomic increment and check
var fixedWindowScript = goredis.NewScript(`
	local key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])

	local current = redis.call('GET', key)
	if current == false then
		current = 0
	else
		current = tonumber(current)
	end

	local ttl = redis.call('TTL', key)
	if ttl < 0 then
		ttl = window
	end

	if current < limit then
		redis.call('INCR', key)
		if ttl == window then
			redis.call('EXPIRE', key, window)
		end
		return {1, limit - current - 1, ttl}
	else
		return {0, 0, ttl}
	end
`)

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *goredis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
		script: fixedWindowScript,
	}
}

// Allow consumes one action for key if the window still has room.
func (r *RateLimiter) Allow(ctx context.Context, key string) (*ratelimit.Result, error) {
	return r.checkLimit(ctx, "ratelimit:"+key, r.config.Limit, r.config.Window)
}

// checkLimit performs the actual rate limit check using a fixed window counter
func (r *RateLimiter) checkLimit(ctx context.Context, key string, limit int, window time.Duration) (*ratelimit.Result, error) {
	result, err := r.script.Run(ctx, r.client, []string{key}, limit, int(window.Seconds())).Result()
	if err != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", err)
	}

	return parseLimitResult(result, limit)
}

func parseLimitResult(result interface{}, limit int) (*ratelimit.Result, error) {
	resultSlice, ok := result.([]interface{})
	if !ok || len(resultSlice) < 3 {
		return nil, fmt.Errorf("unexpected rate limit result format")
	}

	allowed, ok1 := resultSlice[0].(int64)
	remaining, ok2 := resultSlice[1].(int64)
	resetIn, ok3 := resultSlice[2].(int64)
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("unexpected rate limit result format")
	}

	return &ratelimit.Result{
		Allowed:   allowed == 1,
		Remaining: int(remaining),
		ResetIn:   time.Duration(resetIn) * time.Second,
		Limit:     limit,
	}, nil
}
