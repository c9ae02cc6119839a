// Package cache holds server-rendered payloads in Redis so repeated page
// loads skip the backend, and receives the invalidation signals mutating
// actions emit (the revalidate-by-path/tag contract of the rendering layer).
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Revalidator is the invalidation signal surface used by resource actions.
// Invalidation is fire-and-forget; a failed invalidation only delays
// freshness until the entry's TTL runs out.
type Revalidator interface {
	RevalidatePath(ctx context.Context, path string)
	RevalidateTag(ctx context.Context, tag string)
}

const (
	pageKeyPrefix = "page:"
	tagKeyPrefix  = "tag:"
)

func pageKey(path string) string { return pageKeyPrefix + path }
func tagKey(tag string) string   { return tagKeyPrefix + tag }

// PageCache is the Redis-backed cache plus Revalidator.
type PageCache struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewPageCache(rdb *redis.Client, log zerolog.Logger) *PageCache {
	return &PageCache{rdb: rdb, log: log}
}

func (p *PageCache) Get(ctx context.Context, path string) ([]byte, bool) {
	body, err := p.rdb.Get(ctx, pageKey(path)).Bytes()
	if err != nil {
		if err != redis.Nil {
			p.log.Warn().Str("category", "cache").Err(err).Str("path", path).Msg("cache read failed")
		}
		return nil, false
	}
	return body, true
}

// Set stores a rendered payload and registers it under each tag so a tag
// revalidation can find every page it touches.
func (p *PageCache) Set(ctx context.Context, path string, body []byte, ttl time.Duration, tags ...string) {
	key := pageKey(path)
	if err := p.rdb.Set(ctx, key, body, ttl).Err(); err != nil {
		p.log.Warn().Str("category", "cache").Err(err).Str("path", path).Msg("cache write failed")
		return
	}
	for _, tag := range tags {
		if err := p.rdb.SAdd(ctx, tagKey(tag), key).Err(); err != nil {
			p.log.Warn().Str("category", "cache").Err(err).Str("tag", tag).Msg("tag index write failed")
		}
	}
}

func (p *PageCache) RevalidatePath(ctx context.Context, path string) {
	if err := p.rdb.Del(ctx, pageKey(path)).Err(); err != nil {
		p.log.Warn().Str("category", "cache").Err(err).Str("path", path).Msg("path revalidation failed")
		return
	}
	p.log.Debug().Str("path", path).Msg("path revalidated")
}

func (p *PageCache) RevalidateTag(ctx context.Context, tag string) {
	keys, err := p.rdb.SMembers(ctx, tagKey(tag)).Result()
	if err != nil {
		p.log.Warn().Str("category", "cache").Err(err).Str("tag", tag).Msg("tag lookup failed")
		return
	}
	keys = append(keys, tagKey(tag))
	if err := p.rdb.Del(ctx, keys...).Err(); err != nil {
		p.log.Warn().Str("category", "cache").Err(err).Str("tag", tag).Msg("tag revalidation failed")
		return
	}
	p.log.Debug().Str("tag", tag).Msg("tag revalidated")
}

// Noop disables caching; used when REDIS_ADDR is not configured.
type Noop struct{}

func (Noop) RevalidatePath(ctx context.Context, path string) {}
func (Noop) RevalidateTag(ctx context.Context, tag string)   {}
