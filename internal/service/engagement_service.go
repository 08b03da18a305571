package service

import (
	"context"
	"time"

	"communehub/internal/model"
	"communehub/internal/pkg"
)

// cacheDeleteDelay is the delayed second delete that narrows the window for
// a concurrent backfill to resurrect stale counters.
const cacheDeleteDelay = 500 * time.Millisecond

// EngagementService owns the engagement write path. Every mutation commits
// the event row, the counter bump and the outbox record together; the cache
// entry is invalidated afterwards.
type EngagementService struct {
	engagement  EngagementStore
	posts       PostStore
	memberships MembershipStore
	cache       CounterCache
}

func NewEngagementService(engagement EngagementStore, posts PostStore, memberships MembershipStore, cache CounterCache) *EngagementService {
	return &EngagementService{engagement: engagement, posts: posts, memberships: memberships, cache: cache}
}

// CreatePost publishes a post into a community. Only active members may post.
func (s *EngagementService) CreatePost(ctx context.Context, authorID, communityID uint64, content string) (*model.Post, error) {
	if content == "" {
		return nil, pkg.Validationf("post content required")
	}
	m, err := s.memberships.Find(ctx, authorID, communityID)
	if err != nil || !m.IsActive() {
		return nil, pkg.Forbiddenf("user %d is not an active member of community %d", authorID, communityID)
	}

	post := &model.Post{
		CommunityID: communityID,
		AuthorID:    authorID,
		Content:     content,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, pkg.WrapStore(err)
	}
	return post, nil
}

// Like records a like. Returns changed=false when the user already liked
// the post.
func (s *EngagementService) Like(ctx context.Context, userID, postID uint64) (bool, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return false, pkg.WrapStore(err)
	}
	changed, err := s.engagement.Like(ctx, userID, postID)
	if err != nil {
		return false, pkg.WrapStore(err)
	}
	if changed {
		s.invalidate(ctx, postID)
	}
	return changed, nil
}

func (s *EngagementService) Unlike(ctx context.Context, userID, postID uint64) (bool, error) {
	changed, err := s.engagement.Unlike(ctx, userID, postID)
	if err != nil {
		return false, pkg.WrapStore(err)
	}
	if changed {
		s.invalidate(ctx, postID)
	}
	return changed, nil
}

func (s *EngagementService) Comment(ctx context.Context, userID, postID uint64, content string) (*model.PostComment, error) {
	if content == "" {
		return nil, pkg.Validationf("comment content required")
	}
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, pkg.WrapStore(err)
	}
	comment, err := s.engagement.AddComment(ctx, userID, postID, content)
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	s.invalidate(ctx, postID)
	return comment, nil
}

func (s *EngagementService) Share(ctx context.Context, userID, postID uint64) error {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return pkg.WrapStore(err)
	}
	if err := s.engagement.AddShare(ctx, userID, postID); err != nil {
		return pkg.WrapStore(err)
	}
	s.invalidate(ctx, postID)
	return nil
}

func (s *EngagementService) View(ctx context.Context, userID, postID uint64) error {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return pkg.WrapStore(err)
	}
	if err := s.engagement.AddView(ctx, userID, postID); err != nil {
		return pkg.WrapStore(err)
	}
	s.invalidate(ctx, postID)
	return nil
}

func (s *EngagementService) invalidate(ctx context.Context, postID uint64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, postID, cacheDeleteDelay)
}
