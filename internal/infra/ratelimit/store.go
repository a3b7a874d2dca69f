// Package ratelimit backs echo's rate limiter middleware. With a Redis address
// configured the counters are shared by every instance; otherwise they live in memory.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bizdir/config"
	"bizdir/internal/domain/lifecycle"
	"bizdir/internal/errors"

	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

const (
	window            = time.Minute
	redisTimeout      = 500 * time.Millisecond
	memoryStoreExpiry = 3 * time.Minute
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewStore returns the limiter store for the login route.
func NewStore(params Params) middleware.RateLimiterStore {
	cfg := params.Config.RateLimit

	if cfg.Redis == nil || cfg.Redis.Addr == "" {
		params.Logger.Info("Rate limiter using in-memory store",
			slog.Int("requests_per_minute", cfg.RequestsPerMinute),
		)

		return NewMemoryStore(cfg.RequestsPerMinute)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	params.Logger.Info("Rate limiter using Redis store",
		slog.String("addr", cfg.Redis.Addr),
		slog.Int("requests_per_minute", cfg.RequestsPerMinute),
	)

	return NewRedisStore(client, cfg.Redis.KeyPrefix, cfg.RequestsPerMinute, params.Logger)
}

// NewMemoryStore is a per-process token bucket refilling requestsPerMinute tokens a minute.
func NewMemoryStore(requestsPerMinute int) middleware.RateLimiterStore {
	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(requestsPerMinute) / window.Seconds()),
		Burst:     requestsPerMinute,
		ExpiresIn: memoryStoreExpiry,
	})
}

// redisStore counts requests per identifier in fixed one-minute windows.
type redisStore struct {
	client *redis.Client
	prefix string
	limit  int64
	logger *slog.Logger
	now    func() time.Time
}

// NewRedisStore builds a fixed-window store on an existing client.
func NewRedisStore(client *redis.Client, prefix string, requestsPerMinute int, logger *slog.Logger) middleware.RateLimiterStore {
	return &redisStore{
		client: client,
		prefix: prefix,
		limit:  int64(requestsPerMinute),
		logger: logger,
		now:    time.Now,
	}
}

// Allow increments the identifier's counter for the current window.
// Redis failures let the request through so an outage does not lock admins out.
func (s *redisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	key := s.key(identifier, s.now())

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)

		return nil
	})
	if err != nil {
		s.logger.Warn("Rate limiter store unavailable, allowing request", slog.Any("error", err))

		return true, nil
	}

	return incr.Val() <= s.limit, nil
}

func (s *redisStore) key(identifier string, now time.Time) string {
	return fmt.Sprintf("%s%s:%d", s.prefix, identifier, now.Unix()/int64(window.Seconds()))
}
