package comments

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores the comment list of a post
type Cache interface {
	GetList(ctx context.Context, postID int64) ([]Comment, bool)
	SetList(ctx context.Context, postID int64, list []Comment)
	Invalidate(ctx context.Context, postID int64)
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Cache on top of an existing client
func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func listKey(postID int64) string {
	return fmt.Sprintf("comments:post:%d", postID)
}

func (c *redisCache) GetList(ctx context.Context, postID int64) ([]Comment, bool) {
	cached, err := c.client.Get(ctx, listKey(postID)).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("Comment cache read failed", "post_id", postID, "error", err)
		}
		return nil, false
	}

	var list []Comment
	if err := json.Unmarshal([]byte(cached), &list); err != nil {
		return nil, false
	}
	return list, true
}

func (c *redisCache) SetList(ctx context.Context, postID int64, list []Comment) {
	data, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listKey(postID), data, c.ttl).Err(); err != nil {
		slog.Warn("Comment cache write failed", "post_id", postID, "error", err)
	}
}

func (c *redisCache) Invalidate(ctx context.Context, postID int64) {
	if err := c.client.Del(ctx, listKey(postID)).Err(); err != nil {
		slog.Warn("Comment cache invalidation failed", "post_id", postID, "error", err)
	}
}
