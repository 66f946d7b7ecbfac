// Package ratelimit guards the payment and ticketing endpoints with a
// per-payer request budget. The limit is enforced in redis so every API
// instance draws from the same budget; when redis is unreachable each
// instance falls back to a reduced in-process budget.
//
// This is transport-level protection only. The deterministic settlement
// cooldown lives in the store transaction and is not affected by this
// package.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-boxoffice/internal/adapter"
	"github.com/feral-file/ff-boxoffice/internal/logger"
)

// maxLocalLimiters bounds the fallback limiter map during long redis outages
const maxLocalLimiters = 10000

// Config holds the configuration for the ingress rate limiter
type Config struct {
	RequestsPerSecond       int           // Per-key request budget
	Burst                   int           // Per-key burst allowance, defaults to RequestsPerSecond
	RedisKeyPrefix          string        // Namespace for limiter keys in redis
	EnableLocalFallback     bool          // Serve from in-process limiters when redis is down
	LocalFallbackMultiplier float64       // Fraction of the budget each instance grants locally
	HealthCheckInterval     time.Duration // How often to probe redis after a failure
}

// Decision is the outcome of a rate limit check
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration // Wait before retrying, zero when allowed
	Remaining  int           // Remaining budget in the current window (distributed path only)
}

// Limiter answers whether a request identified by key may proceed.
// Keys are payer addresses, so one hot payer cannot starve the rest.
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockIngressLimiter
type Limiter interface {
	// Allow checks the request identified by key against the rate limit
	// The check never blocks; a denied decision carries a RetryAfter hint
	Allow(ctx context.Context, key string) (*Decision, error)

	// Close gracefully shuts down the limiter
	Close() error
}

// limiter is the concrete implementation backed by redis_rate with a local fallback
type limiter struct {
	config             Config
	redis              adapter.RedisClient
	distributedLimiter adapter.RedisRateLimiter
	clock              adapter.Clock
	closed             atomic.Bool
	closeOnce          sync.Once
	redisAvailable     atomic.Bool

	mu            sync.Mutex
	localLimiters map[string]*rate.Limiter
}

// NewLimiter creates a new ingress rate limiter
func NewLimiter(cfg Config, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	// Validate and set defaults
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Test Redis connectivity
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisAvailable := true
	if err := rc.Ping(ctx).Err(); err != nil {
		redisAvailable = false
		if !cfg.EnableLocalFallback {
			return nil, fmt.Errorf("redis unavailable and fallback disabled: %w", err)
		}
		logger.Warn("Redis unavailable, will use local fallback", zap.Error(err))
	}

	l := &limiter{
		config:             cfg,
		redis:              rc,
		distributedLimiter: rc.NewRateLimiter(),
		clock:              clock,
		localLimiters:      make(map[string]*rate.Limiter),
	}
	l.redisAvailable.Store(redisAvailable)

	// Start Redis health check goroutine
	go l.monitorRedisHealth()

	logger.Info("Ingress rate limiter initialized",
		zap.Int("requests_per_second", cfg.RequestsPerSecond),
		zap.Int("burst", cfg.Burst),
		zap.Bool("local_fallback", cfg.EnableLocalFallback),
	)

	return l, nil
}

// Allow checks the request identified by key against the rate limit
func (l *limiter) Allow(ctx context.Context, key string) (*Decision, error) {
	if l.closed.Load() {
		return nil, fmt.Errorf("limiter is closed")
	}

	// Try distributed limiter first if Redis is available
	if l.redisAvailable.Load() {
		decision, err := l.tryDistributedLimit(ctx, key)
		if err == nil {
			return decision, nil
		}

		// Context errors are the caller's problem, not a Redis failure
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		// Redis error - mark as unavailable and fall back to local if enabled
		l.redisAvailable.Store(false)

		if !l.config.EnableLocalFallback {
			return nil, fmt.Errorf("redis rate limiter unavailable: %w", err)
		}

		logger.Warn("Redis rate limiter error, falling back to local",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	if !l.config.EnableLocalFallback {
		return nil, fmt.Errorf("redis rate limiter unavailable")
	}

	return l.tryLocalLimit(key), nil
}

// tryDistributedLimit checks the key against the shared redis budget
func (l *limiter) tryDistributedLimit(ctx context.Context, key string) (*Decision, error) {
	redisKey := fmt.Sprintf("%s%s", l.config.RedisKeyPrefix, key)

	res, err := l.distributedLimiter.Allow(ctx, redisKey, redis_rate.PerSecond(l.config.RequestsPerSecond))
	if err != nil {
		return nil, err
	}

	if res.Allowed == 0 {
		logger.Debug("Rate limit exceeded",
			zap.String("key", key),
			zap.Duration("retry_after", res.RetryAfter),
			zap.Int("remaining", res.Remaining),
		)
		return &Decision{Allowed: false, RetryAfter: res.RetryAfter, Remaining: res.Remaining}, nil
	}

	return &Decision{Allowed: true, Remaining: res.Remaining}, nil
}

// tryLocalLimit checks the key against this instance's fallback budget
func (l *limiter) tryLocalLimit(key string) *Decision {
	l.mu.Lock()
	lim, ok := l.localLimiters[key]
	if !ok {
		if len(l.localLimiters) >= maxLocalLimiters {
			// Reset to bound memory if redis stays down for long
			l.localLimiters = make(map[string]*rate.Limiter)
		}
		// Each instance grants a fraction of the budget so the sum over
		// instances stays near the configured rate. Minimum rate of 1.0
		localRate := max(float64(l.config.RequestsPerSecond)*l.config.LocalFallbackMultiplier, 1.0)
		lim = rate.NewLimiter(rate.Limit(localRate), l.config.Burst)
		l.localLimiters[key] = lim
	}
	l.mu.Unlock()

	r := lim.Reserve()
	if d := r.Delay(); d > 0 {
		r.Cancel()
		return &Decision{Allowed: false, RetryAfter: d}
	}
	return &Decision{Allowed: true}
}

// monitorRedisHealth periodically checks Redis health and updates availability status
func (l *limiter) monitorRedisHealth() {
	ticker := l.clock.NewTicker(l.config.HealthCheckInterval)
	defer ticker.Stop()

	for {
		if l.closed.Load() {
			return
		}

		<-ticker.C

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := l.redis.Ping(ctx).Err()
		cancel()

		redisAvailable := err == nil
		wasAvailable := l.redisAvailable.Load()
		l.redisAvailable.Store(redisAvailable)

		if !wasAvailable && redisAvailable {
			logger.Info("Redis connection restored")
		}
	}
}

// Close gracefully shuts down the limiter
func (l *limiter) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.closed.Store(true)

		logger.Info("Shutting down ingress rate limiter")

		// Close Redis connection
		if closeErr := l.redis.Close(); closeErr != nil {
			logger.Warn("Error closing Redis connection", zap.Error(closeErr))
			err = closeErr
		}
	})
	return err
}

// validateConfig validates and sets defaults for the configuration
func validateConfig(cfg *Config) error {
	if cfg.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}

	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerSecond
	}

	if cfg.RedisKeyPrefix == "" {
		cfg.RedisKeyPrefix = "ff:boxoffice:limiter:"
	}

	if cfg.LocalFallbackMultiplier <= 0 {
		cfg.LocalFallbackMultiplier = 0.5
	}

	if cfg.HealthCheckInterval <= 0 {
		cfg.HealthCheckInterval = 10 * time.Second
	}

	return nil
}
