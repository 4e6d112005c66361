// Package cache хранит счётчики неудачных попыток входа в redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/budget-manager/internal/config"
)

const loginAttemptsPrefix = "login_attempts:"

// Cache обёртка над клиентом redis.
type Cache struct {
	Db *redis.Client
}

// InitServer подключается к redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

// Close закрывает клиент.
func (c *Cache) Close() error {
	return c.Db.Close()
}

func attemptsKey(key string) string {
	return loginAttemptsPrefix + key
}

// Attempts возвращает число неудачных попыток входа для key.
func (c *Cache) Attempts(ctx context.Context, key string) (int, error) {
	const op = "cache.Attempts"
	n, err := c.Db.Get(ctx, attemptsKey(key)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// RegisterFailure увеличивает счётчик. Окно отсчитывается от первой неудачи.
// SET NX EX и INCR выполняются в одной транзакции, так что счётчик
// не остаётся без TTL.
func (c *Cache) RegisterFailure(ctx context.Context, key string, window time.Duration) (int, error) {
	const op = "cache.RegisterFailure"
	k := attemptsKey(key)

	var incr *redis.IntCmd
	_, err := c.Db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, window)
		incr = pipe.Incr(ctx, k)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(incr.Val()), nil
}

// Reset сбрасывает счётчик после успешного входа.
func (c *Cache) Reset(ctx context.Context, key string) error {
	const op = "cache.Reset"
	if err := c.Db.Del(ctx, attemptsKey(key)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
