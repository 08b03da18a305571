package redis

import (
	"context"
	"fmt"
	"time"

	"communehub/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	CounterTTL       = 24 * time.Hour
	CounterKeyPrefix = "engagement:cnt:post"
)

// EngagementCacheRepository keeps hot per-post counters in a redis hash so
// ranking reads skip MySQL for recently touched posts.
type EngagementCacheRepository struct {
	ttl time.Duration
}

func NewEngagementCacheRepository() *EngagementCacheRepository {
	return &EngagementCacheRepository{ttl: CounterTTL}
}

func (r *EngagementCacheRepository) key(postID uint64) string {
	return fmt.Sprintf("%s:%d", CounterKeyPrefix, postID)
}

// Get returns the cached counters and whether the post was present.
func (r *EngagementCacheRepository) Get(ctx context.Context, postID uint64) (model.EngagementCounters, bool, error) {
	var c model.EngagementCounters
	key := r.key(postID)
	exists, err := Client.Exists(ctx, key).Result()
	if err != nil {
		return c, false, err
	}
	if exists == 0 {
		return c, false, nil
	}
	if err := Client.HGetAll(ctx, key).Scan(&c); err != nil {
		return c, false, err
	}
	return c, true, nil
}

// Set backfills counters after a MySQL read.
func (r *EngagementCacheRepository) Set(ctx context.Context, postID uint64, c model.EngagementCounters) error {
	key := r.key(postID)
	pipe := Client.TxPipeline()
	pipe.HSet(ctx, key,
		"likes", c.Likes,
		"comments", c.Comments,
		"shares", c.Shares,
		"views", c.Views,
	)
	pipe.Expire(ctx, key, r.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Delete drops the cached counters, with an optional delayed second delete
// to shrink the window where a concurrent backfill resurrects stale values.
func (r *EngagementCacheRepository) Delete(ctx context.Context, postID uint64, delay ...time.Duration) error {
	key := r.key(postID)
	if err := Client.Del(ctx, key).Err(); err != nil && err != redis.Nil {
		return err
	}
	if len(delay) > 0 && delay[0] > 0 {
		d := delay[0]
		go func() {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			_ = Client.Del(context.Background(), key).Err()
		}()
	}
	return nil
}
