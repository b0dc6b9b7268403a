package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds single posts and listing pages
type Cache interface {
	GetPost(ctx context.Context, postID int64) (*Post, bool)
	SetPost(ctx context.Context, p *Post)
	GetPage(ctx context.Context, page PageRequest) (*PostPage, bool)
	SetPage(ctx context.Context, page PageRequest, result *PostPage)
	InvalidatePost(ctx context.Context, postID int64)
	InvalidatePages(ctx context.Context)
}

type redisCache struct {
	client  *redis.Client
	postTTL time.Duration
	pageTTL time.Duration
}

// NewRedisCache caches posts for ttl and listing pages for half of it
func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{client: client, postTTL: ttl, pageTTL: ttl / 2}
}

func postKey(postID int64) string {
	return fmt.Sprintf("post:%d", postID)
}

func pageKey(p PageRequest) string {
	return fmt.Sprintf("posts:page:%d:size:%d:sort:%s:%s", p.PageNo, p.PageSize, p.SortBy, p.SortDir)
}

const pagePattern = "posts:page:*"

func (c *redisCache) GetPost(ctx context.Context, postID int64) (*Post, bool) {
	var p Post
	if !c.get(ctx, postKey(postID), &p) {
		return nil, false
	}
	return &p, true
}

func (c *redisCache) SetPost(ctx context.Context, p *Post) {
	c.set(ctx, postKey(p.ID), p, c.postTTL)
}

func (c *redisCache) GetPage(ctx context.Context, page PageRequest) (*PostPage, bool) {
	var result PostPage
	if !c.get(ctx, pageKey(page), &result) {
		return nil, false
	}
	return &result, true
}

func (c *redisCache) SetPage(ctx context.Context, page PageRequest, result *PostPage) {
	c.set(ctx, pageKey(page), result, c.pageTTL)
}

func (c *redisCache) InvalidatePost(ctx context.Context, postID int64) {
	if err := c.client.Del(ctx, postKey(postID)).Err(); err != nil {
		slog.Warn("Post cache invalidation failed", "post_id", postID, "error", err)
	}
}

// InvalidatePages drops every cached listing page
func (c *redisCache) InvalidatePages(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, pagePattern, 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Warn("Error scanning cache keys", "pattern", pagePattern, "error", err)
	}
}

func (c *redisCache) get(ctx context.Context, key string, dst any) bool {
	cached, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("Post cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(cached, dst); err != nil {
		return false
	}
	slog.Debug("Cache hit", "key", key)
	return true
}

func (c *redisCache) set(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		slog.Warn("Post cache write failed", "key", key, "error", err)
	}
}
