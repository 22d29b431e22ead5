package redis

import (
	"context"
	"fmt"
	"time"
)

// FixedWindowLimiter implements a fixed-window rate limiter using Redis:
// INCR key; if count == 1 then EXPIRE key window.
// key should already include identity + route and window bucket.
type FixedWindowLimiter struct {
	client *Client
}

func NewFixedWindowLimiter(c *Client) *FixedWindowLimiter {
	return &FixedWindowLimiter{client: c}
}

type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration // 0 if allowed
	Count      int
}

func (d Decision) Get() (bool, int, int, time.Duration) {
	return d.Allowed, d.Limit, d.Remaining, d.RetryAfter
}

// AllowFixedWindow returns whether a request is allowed for the given
// key+window. limit <= 0 disables the check.
func (l *FixedWindowLimiter) AllowFixedWindow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	if limit <= 0 {
		return Decision{Allowed: true, Limit: limit, Remaining: limit}, nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if l.client == nil || l.client.rdb == nil {
		// Redis disabled => allow (fail-open).
		return Decision{Allowed: true, Limit: limit, Remaining: limit}, nil
	}

	// Lua to ensure atomic INCR + set expire on first hit.
	// returns: {count, ttl_ms}
	const lua = `
local c = redis.call("INCR", KEYS[1])
if c == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {c, ttl}
`
	res, err := l.client.rdb.Eval(ctx, lua, []string{key}, window.Milliseconds()).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit redis eval: %w", err)
	}

	arr, ok := res.([]any)
	if !ok || len(arr) != 2 {
		return Decision{}, fmt.Errorf("ratelimit redis eval: unexpected result type")
	}

	count := int(arr[0].(int64))
	ttl := time.Duration(arr[1].(int64)) * time.Millisecond

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	d := Decision{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		Count:     count,
	}
	if !d.Allowed {
		d.RetryAfter = window
		if ttl > 0 {
			d.RetryAfter = ttl
		}
	}
	return d, nil
}
