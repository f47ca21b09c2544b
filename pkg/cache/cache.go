// Package cache содержит необязательный Redis-кэш списков товаров.
// Ключи привязаны к номеру поколения; любое изменение каталога сдвигает
// поколение и тем самым сбрасывает все сохранённые списки разом.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const generationKey = "bazaar:products:gen"

// ProductCache кэш ответов GET /products. Nil-значение отключает кэширование.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *ProductCache {
	if rdb == nil {
		return nil
	}
	return &ProductCache{rdb: rdb, ttl: ttl}
}

// Dial подключается к Redis и проверяет соединение
func Dial(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func (c *ProductCache) key(ctx context.Context, query string) (string, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	sum := sha1.Sum([]byte(query))
	return fmt.Sprintf("bazaar:products:%d:%s", gen, hex.EncodeToString(sum[:])), nil
}

// Get возвращает сохранённый ответ для строки запроса, если он ещё жив
func (c *ProductCache) Get(ctx context.Context, query string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	key, err := c.key(ctx, query)
	if err != nil {
		return nil, false
	}
	body, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

// Set сохраняет ответ; ошибки кэша не влияют на запрос
func (c *ProductCache) Set(ctx context.Context, query string, body []byte) {
	if c == nil {
		return
	}
	key, err := c.key(ctx, query)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key, body, c.ttl).Err()
}

// Invalidate сдвигает поколение после изменения каталога или завершения заказа
func (c *ProductCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	_ = c.rdb.Incr(ctx, generationKey).Err()
}
