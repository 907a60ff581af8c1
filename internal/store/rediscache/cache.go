package rediscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const defaultPrefix = "galeria:listing:"

// Cache stores filtered gallery listings in Redis, keyed by directory.
type Cache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

type cachedListing struct {
	Names    []string  `json:"names"`
	CachedAt time.Time `json:"cachedAt"`
}

func New(rdb *redis.Client, prefix string, ttl time.Duration) *Cache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Connect opens a client for addr and pings it with exponential backoff until
// maxElapsed runs out.
func Connect(ctx context.Context, addr string, maxElapsed time.Duration) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if maxElapsed <= 0 {
		maxElapsed = 10 * time.Second // zero would retry forever
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = maxElapsed

	attempt := 0
	op := func() error {
		attempt++
		err := rdb.Ping(ctx).Err()
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			log.Debug().Err(err).Str("addr", addr).Int("attempt", attempt).Msg("redis ping failed")
		}
		return err
	}
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s unreachable after %d attempts: %w", addr, attempt, err)
	}

	log.Info().Str("addr", addr).Int("attempts", attempt).Msg("redis connected")
	return rdb, nil
}

// Get returns the cached names for dir. A miss or a decode problem reports false.
func (c *Cache) Get(ctx context.Context, dir string) ([]string, bool) {
	data, err := c.rdb.Get(ctx, c.key(dir)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("dir", dir).Msg("listing cache read failed")
		}
		return nil, false
	}
	var cached cachedListing
	if err := json.Unmarshal(data, &cached); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("listing cache entry corrupt")
		return nil, false
	}
	return cached.Names, true
}

func (c *Cache) Set(ctx context.Context, dir string, names []string) error {
	data, err := json.Marshal(cachedListing{Names: names, CachedAt: time.Now()})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.key(dir), data, c.ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, dir string) error {
	return c.rdb.Del(ctx, c.key(dir)).Err()
}

func (c *Cache) key(dir string) string {
	h := sha256.Sum256([]byte(dir))
	return c.prefix + hex.EncodeToString(h[:8])
}
