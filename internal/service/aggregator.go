package service

import (
	"context"
	"time"

	"communehub/internal/model"
	"communehub/internal/pkg"
	"communehub/internal/ranking"
)

// EngagementAggregator serves the read-only counter+age view the scoring
// engine consumes. Ages come from the post rows; counters prefer the redis
// cache, with a lazy backfill from the row on miss.
type EngagementAggregator struct {
	posts PostStore
	cache CounterCache
	now   func() time.Time
}

func NewEngagementAggregator(posts PostStore, cache CounterCache) *EngagementAggregator {
	return &EngagementAggregator{posts: posts, cache: cache, now: time.Now}
}

// Snapshot returns counters and age for every requested post ID. A missing
// post yields zero counters at maximal age rather than an error, so one
// absent candidate cannot break ranking of the rest.
func (a *EngagementAggregator) Snapshot(ctx context.Context, ids []uint64) (map[uint64]ranking.Engagement, error) {
	rows, err := a.posts.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkg.WrapStore(err)
	}

	out := make(map[uint64]ranking.Engagement, len(ids))
	now := a.now()
	for _, id := range ids {
		post, ok := rows[id]
		if !ok {
			out[id] = ranking.Engagement{AgeHours: ranking.MaxAgeHours}
			continue
		}
		e := ranking.Engagement{
			Likes:    post.LikeCount,
			Comments: post.CommentCount,
			Shares:   post.ShareCount,
			Views:    post.ViewsCount,
			AgeHours: ranking.AgeHours(post.CreatedAt, now),
		}
		if a.cache != nil {
			if c, hit, cerr := a.cache.Get(ctx, id); cerr == nil && hit {
				e.Likes, e.Comments, e.Shares, e.Views = c.Likes, c.Comments, c.Shares, c.Views
			} else if cerr == nil {
				// Cache errors are not fatal; the row already served the read.
				_ = a.cache.Set(ctx, id, model.EngagementCounters{
					Likes:    post.LikeCount,
					Comments: post.CommentCount,
					Shares:   post.ShareCount,
					Views:    post.ViewsCount,
				})
			}
		}
		out[id] = e
	}
	return out, nil
}
