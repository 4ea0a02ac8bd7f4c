package db

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisKeyPrefix = "workoo:session:"

// RedisConfig contains options for connecting the Redis session repository.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	// TTL is refreshed on every write; zero disables expiry.
	TTL time.Duration
}

// redisSessionRepository stores one hash per browser.
type redisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepository connects to Redis and verifies the connection with PING.
func NewRedisSessionRepository(ctx context.Context, cfg RedisConfig, logger *zap.Logger) (SessionRepository, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Address, err)
	}
	logger.Info("Connected to Redis session store", zap.String("address", cfg.Address), zap.Int("db", cfg.DB))
	return newRedisSessionRepository(rdb, cfg.TTL), nil
}

func newRedisSessionRepository(client *redis.Client, ttl time.Duration) *redisSessionRepository {
	return &redisSessionRepository{client: client, ttl: ttl}
}

func (r *redisSessionRepository) Load(ctx context.Context, browserID string) (map[string]string, error) {
	if browserID == "" {
		return nil, ErrEmptyBrowserID
	}
	values, err := r.client.HGetAll(ctx, redisKeyPrefix+browserID).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to load session for browser '%s': %w", browserID, err)
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}

// Write runs the removal and the update inside MULTI/EXEC.
func (r *redisSessionRepository) Write(ctx context.Context, browserID string, set map[string]string, remove []string) error {
	if browserID == "" {
		return ErrEmptyBrowserID
	}
	key := redisKeyPrefix + browserID
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(remove) > 0 {
			pipe.HDel(ctx, key, remove...)
		}
		if len(set) > 0 {
			values := make(map[string]interface{}, len(set))
			for k, v := range set {
				values[k] = v
			}
			pipe.HSet(ctx, key, values)
			if r.ttl > 0 {
				pipe.Expire(ctx, key, r.ttl)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write session for browser '%s': %w", browserID, err)
	}
	return nil
}

func (r *redisSessionRepository) Close() error {
	return r.client.Close()
}
