package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"spinwin/internal/utils"
	"spinwin/pkg/cache"
)

// LoginLimiter counts failed logins per username and locks the account once
// maxAttempts failures land inside one lockout window.
type LoginLimiter interface {
	Locked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) (int64, error)
	Reset(ctx context.Context, username string) error
}

func attemptsKey(username string) string {
	return utils.CacheLoginAttemptsPrefix + utils.CanonicalKey(username)
}

type redisLoginLimiter struct {
	cache       *cache.RedisCache
	maxAttempts int64
	lockout     time.Duration
}

func NewRedisLoginLimiter(redisCache *cache.RedisCache, maxAttempts int, lockout time.Duration) LoginLimiter {
	return &redisLoginLimiter{
		cache:       redisCache,
		maxAttempts: int64(maxAttempts),
		lockout:     lockout,
	}
}

func (l *redisLoginLimiter) Locked(ctx context.Context, username string) (bool, error) {
	n, err := l.cache.GetInt(ctx, attemptsKey(username))
	if err != nil {
		return false, fmt.Errorf("failed to read login attempts: %w", err)
	}
	return n >= l.maxAttempts, nil
}

func (l *redisLoginLimiter) RecordFailure(ctx context.Context, username string) (int64, error) {
	n, err := l.cache.IncrementWithTTL(ctx, attemptsKey(username), l.lockout)
	if err != nil {
		return n, fmt.Errorf("failed to record login attempt: %w", err)
	}
	return n, nil
}

func (l *redisLoginLimiter) Reset(ctx context.Context, username string) error {
	return l.cache.Delete(ctx, attemptsKey(username))
}

type attemptWindow struct {
	count   int64
	expires time.Time
}

type memoryLoginLimiter struct {
	mu          sync.Mutex
	attempts    map[string]attemptWindow
	maxAttempts int64
	lockout     time.Duration
	now         func() time.Time
}

// NewMemoryLoginLimiter keeps counters in process, for single instance
// deployments without Redis.
func NewMemoryLoginLimiter(maxAttempts int, lockout time.Duration) LoginLimiter {
	return newMemoryLoginLimiter(maxAttempts, lockout, time.Now)
}

func newMemoryLoginLimiter(maxAttempts int, lockout time.Duration, now func() time.Time) *memoryLoginLimiter {
	return &memoryLoginLimiter{
		attempts:    make(map[string]attemptWindow),
		maxAttempts: int64(maxAttempts),
		lockout:     lockout,
		now:         now,
	}
}

// current must be called with mu held.
func (l *memoryLoginLimiter) current(key string) attemptWindow {
	w, ok := l.attempts[key]
	if ok && !l.now().Before(w.expires) {
		delete(l.attempts, key)
		return attemptWindow{}
	}
	return w
}

func (l *memoryLoginLimiter) Locked(_ context.Context, username string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current(attemptsKey(username)).count >= l.maxAttempts, nil
}

func (l *memoryLoginLimiter) RecordFailure(_ context.Context, username string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := attemptsKey(username)
	w := l.current(key)
	if w.count == 0 {
		w.expires = l.now().Add(l.lockout)
	}
	w.count++
	l.attempts[key] = w
	return w.count, nil
}

func (l *memoryLoginLimiter) Reset(_ context.Context, username string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, attemptsKey(username))
	return nil
}
