package media

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedResolver keeps resolved metadata in memory (L1) and, when a Redis
// URL is configured, in Redis (L2) so that it survives restarts.
type CachedResolver struct {
	resolver   MetadataResolver
	l1         sync.Map
	rdb        *redis.Client
	ttl        time.Duration
	maxEntries int // zero disables the L1 bound
	now        func() time.Time
}

type cacheEntry struct {
	metadata  Metadata
	expiresAt time.Time
}

func NewCachedResolver(resolver MetadataResolver, redisURL string, ttl time.Duration) *CachedResolver {
	c := &CachedResolver{resolver: resolver, ttl: ttl, maxEntries: DefaultMetadataCacheEntries, now: time.Now}

	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			slog.Warn("Invalid Redis URL, metadata L2 cache disabled", "err", err)
		} else {
			rdb := redis.NewClient(opts)
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := rdb.Ping(ctx).Err(); err != nil {
				slog.Warn("Redis unreachable, metadata L2 cache disabled", "err", err)
				rdb.Close()
			} else {
				c.rdb = rdb
				slog.Info("Metadata L2 cache connected", slog.String("addr", opts.Addr))
			}
		}
	}

	return c
}

func metadataCacheKey(ref VideoReference) string {
	hash := sha256.Sum256([]byte(string(ref.Platform) + "\000" + ref.VideoId))
	return fmt.Sprintf("dersflix:md:%x", hash[:12])
}

func (c *CachedResolver) ResolveMetadata(ctx context.Context, ref VideoReference) (*Metadata, error) {
	key := metadataCacheKey(ref)

	if value, ok := c.l1.Load(key); ok {
		entry := value.(*cacheEntry)
		if c.now().Before(entry.expiresAt) {
			metadata := entry.metadata
			return &metadata, nil
		}
		c.l1.Delete(key)
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var metadata Metadata
			if err := json.Unmarshal(data, &metadata); err == nil {
				c.store(key, metadata)
				return &metadata, nil
			}
		} else if err != redis.Nil {
			slog.Warn("Metadata L2 cache read failed", "err", err)
		}
	}

	metadata, err := c.resolver.ResolveMetadata(ctx, ref)
	if err != nil {
		return nil, err
	}

	c.store(key, *metadata)
	if c.rdb != nil {
		data, err := json.Marshal(metadata)
		if err == nil {
			err = c.rdb.Set(ctx, key, data, c.ttl).Err()
		}
		if err != nil {
			slog.Warn("Metadata L2 cache write failed", "err", err)
		}
	}

	return metadata, nil
}

// Forget drops a reference from both cache tiers, used when the user
// explicitly asks for fresh metadata.
func (c *CachedResolver) Forget(ctx context.Context, ref VideoReference) {
	key := metadataCacheKey(ref)
	c.l1.Delete(key)
	if c.rdb != nil {
		if err := c.rdb.Del(ctx, key).Err(); err != nil {
			slog.Warn("Metadata L2 cache delete failed", "err", err)
		}
	}
}

func (c *CachedResolver) store(key string, metadata Metadata) {
	c.evictIfNeeded()
	c.l1.Store(key, &cacheEntry{metadata: metadata, expiresAt: c.now().Add(c.ttl)})
}

func (c *CachedResolver) l1Len() int {
	count := 0
	c.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// evictIfNeeded makes room for one more L1 entry, dropping expired entries
// first and then the ones closest to expiry.
func (c *CachedResolver) evictIfNeeded() {
	if c.maxEntries <= 0 {
		return
	}

	count := c.l1Len()
	if count < c.maxEntries {
		return
	}

	count -= c.Sweep()
	for count >= c.maxEntries {
		var oldestKey any
		var oldestAt time.Time
		c.l1.Range(func(key, value any) bool {
			entry := value.(*cacheEntry)
			if oldestKey == nil || entry.expiresAt.Before(oldestAt) {
				oldestKey, oldestAt = key, entry.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			return
		}

		c.l1.Delete(oldestKey)
		count--
	}
}

// Sweep removes expired L1 entries and returns how many were removed.
func (c *CachedResolver) Sweep() int {
	removed := 0
	now := c.now()
	c.l1.Range(func(key, value any) bool {
		if !now.Before(value.(*cacheEntry).expiresAt) {
			c.l1.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// SweepEvery runs Sweep on the given interval until ctx is done.
func (c *CachedResolver) SweepEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := c.Sweep(); removed > 0 {
				slog.Debug("Swept expired metadata cache entries", slog.Int("removed", removed))
			}
		}
	}
}
