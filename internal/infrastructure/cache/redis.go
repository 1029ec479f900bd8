package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/broker-gateway/internal/broker"
	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 2 * time.Second

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache shares cached Broker responses between gateway instances.
// Redis expires keys itself, so it has no PurgeExpired.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewRedisCache connects to Redis and pings it before returning.
func NewRedisCache(ctx context.Context, cfg RedisConfig, logger *slog.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logger.Info("connected to redis cache", "addr", cfg.Addr, "db", cfg.DB)

	return NewRedisCacheFromClient(client, logger), nil
}

func NewRedisCacheFromClient(client *redis.Client, logger *slog.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (broker.CachedEntry, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return broker.CachedEntry{}, false, nil
	}
	if err != nil {
		return broker.CachedEntry{}, false, fmt.Errorf("redis get: %w", err)
	}

	var entry broker.CachedEntry
	if err := json.Unmarshal(val, &entry); err != nil {
		c.logger.Warn("dropping undecodable cache entry", "key", key, "error", err)
		return broker.CachedEntry{}, false, nil
	}
	return entry, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, result broker.Result, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	data, err := json.Marshal(broker.CachedEntry{
		Result:   result,
		StoredAt: c.now(),
		TTL:      ttl,
	})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
