package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix  = "post:%s"
	RecentPostsKey = "posts:recent"
)

const (
	PostTTL        = 30 * time.Minute
	RecentPostsTTL = 2 * time.Minute
)

func PostKey(id string) string {
	return fmt.Sprintf(PostKeyPrefix, id)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePost(ctx context.Context, id string) {
	Invalidate(ctx, PostKey(id))
}

func InvalidateRecentPosts(ctx context.Context) {
	Invalidate(ctx, RecentPostsKey)
}
