package service

import (
	"context"
	"time"

	"communehub/internal/model"
)

// Store interfaces consumed by the services. The mysql and redis
// repositories are the production implementations; tests plug in in-memory
// fakes.

type UserStore interface {
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	SimilarUserIDs(ctx context.Context, userID uint64, interests []string, limit int) ([]uint64, error)
	UpdateInterests(ctx context.Context, userID uint64, interests []string) error
}

type CommunityStore interface {
	Create(ctx context.Context, c *model.Community) error
	FindByID(ctx context.Context, id uint64) (*model.Community, error)
	FindByIDs(ctx context.Context, ids []uint64) (map[uint64]model.Community, error)
	ListAll(ctx context.Context) ([]model.Community, error)
	Stats(ctx context.Context, ids []uint64, recentWindow time.Duration) (map[uint64]model.CommunityStats, error)
	DeleteCascade(ctx context.Context, communityID uint64) error
}

type PostStore interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint64) (*model.Post, error)
	FindByIDs(ctx context.Context, ids []uint64) (map[uint64]model.Post, error)
	ListCandidates(ctx context.Context, communityID uint64) ([]model.Post, error)
}

type MembershipStore interface {
	Create(ctx context.Context, m *model.Membership) error
	Find(ctx context.Context, userID, communityID uint64) (*model.Membership, error)
	Save(ctx context.Context, m *model.Membership) error
	ActiveCommunityIDs(ctx context.Context, userID uint64) ([]uint64, error)
	MemberCommunityIDs(ctx context.Context, userID uint64) ([]uint64, error)
	Leaderboard(ctx context.Context, communityID uint64, offset, limit int) ([]model.Membership, int64, error)
}

type EngagementStore interface {
	Like(ctx context.Context, userID, postID uint64) (bool, error)
	Unlike(ctx context.Context, userID, postID uint64) (bool, error)
	AddComment(ctx context.Context, userID, postID uint64, content string) (*model.PostComment, error)
	AddShare(ctx context.Context, userID, postID uint64) error
	AddView(ctx context.Context, userID, postID uint64) error
	CountBySimilarUsers(ctx context.Context, postIDs, userIDs []uint64) (map[uint64]int64, error)
	Recount(ctx context.Context, postID uint64) error
	RecentPostIDs(ctx context.Context, since time.Time, limit int) ([]uint64, error)
}

type CounterCache interface {
	Get(ctx context.Context, postID uint64) (model.EngagementCounters, bool, error)
	Set(ctx context.Context, postID uint64, c model.EngagementCounters) error
	Delete(ctx context.Context, postID uint64, delay ...time.Duration) error
}
