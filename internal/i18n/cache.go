package i18n

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Cache stores finished translations. A miss is ("", false, nil).
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// CacheKey is stable across processes so a shared Redis can be reused.
func CacheKey(lang, text string) string {
	sum := sha256.Sum256([]byte(text))
	return "tr:" + lang + ":" + hex.EncodeToString(sum[:])
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, eris.Wrapf(err, "redis get %s", key)
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return eris.Wrapf(err, "redis set %s", key)
	}
	return nil
}

// CachedTranslator serves repeated UI strings from the cache. Cache errors
// are logged and never block a translation.
type CachedTranslator struct {
	next  Translator
	cache Cache
}

func NewCachedTranslator(next Translator, cache Cache) *CachedTranslator {
	return &CachedTranslator{next: next, cache: cache}
}

func (t *CachedTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	key := CacheKey(target, text)

	cached, ok, err := t.cache.Get(ctx, key)
	if err != nil {
		zap.L().Warn("translation cache read failed", zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	out, err := t.next.Translate(ctx, text, target)
	if err != nil {
		return "", err
	}

	if err := t.cache.Set(ctx, key, out); err != nil {
		zap.L().Warn("translation cache write failed", zap.Error(err))
	}
	return out, nil
}
