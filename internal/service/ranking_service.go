package service

import (
	"context"

	"communehub/internal/model"
	"communehub/internal/pkg"
	"communehub/internal/ranking"
)

// ScoredPost is one ranked feed entry with the factors that produced its
// score. Ephemeral; never persisted.
type ScoredPost struct {
	Post                  model.Post `json:"post"`
	Score                 float64    `json:"score"`
	SimilarUserEngagement int64      `json:"similarUserEngagement,omitempty"`
	InterestOverlap       int        `json:"interestOverlap,omitempty"`
}

type PostPage struct {
	Items      []ScoredPost     `json:"items"`
	Pagination ranking.Envelope `json:"pagination"`
}

// RankingService produces trending and personalized-trending post pages.
type RankingService struct {
	posts       PostStore
	communities CommunityStore
	engagement  EngagementStore
	aggregator  *EngagementAggregator
	resolver    *PersonalizationResolver
}

func NewRankingService(posts PostStore, communities CommunityStore, engagement EngagementStore,
	aggregator *EngagementAggregator, resolver *PersonalizationResolver) *RankingService {
	return &RankingService{
		posts:       posts,
		communities: communities,
		engagement:  engagement,
		aggregator:  aggregator,
		resolver:    resolver,
	}
}

// RankPosts ranks the eligible candidate set by trending score and returns
// one page. communityID=0 means global scope; viewerID=0 means anonymous
// (no personalization, public+free candidates only). Scoring covers the
// whole eligible set before the page is sliced.
func (s *RankingService) RankPosts(ctx context.Context, communityID, viewerID uint64, page, limit int) (*PostPage, error) {
	page, limit = ranking.NormalizePage(page, limit)

	// One personalization snapshot per request; all candidates are scored
	// against it.
	var snap *Snapshot
	if viewerID != 0 {
		var err error
		snap, err = s.resolver.Resolve(ctx, viewerID)
		if err != nil {
			return nil, err
		}
	}

	candidates, err := s.posts.ListCandidates(ctx, communityID)
	if err != nil {
		return nil, pkg.WrapStore(err)
	}

	communityIDs := make([]uint64, 0, len(candidates))
	seen := make(map[uint64]struct{}, len(candidates))
	for _, p := range candidates {
		if _, ok := seen[p.CommunityID]; !ok {
			seen[p.CommunityID] = struct{}{}
			communityIDs = append(communityIDs, p.CommunityID)
		}
	}
	communities, err := s.communities.FindByIDs(ctx, communityIDs)
	if err != nil {
		return nil, pkg.WrapStore(err)
	}

	eligible := candidates[:0]
	for _, p := range candidates {
		c, ok := communities[p.CommunityID]
		if !ok {
			continue
		}
		if eligiblePost(c, snap) {
			eligible = append(eligible, p)
		}
	}

	postIDs := make([]uint64, len(eligible))
	byID := make(map[uint64]model.Post, len(eligible))
	for i, p := range eligible {
		postIDs[i] = p.ID
		byID[p.ID] = p
	}

	engagement, err := s.aggregator.Snapshot(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	var similarCounts map[uint64]int64
	if snap != nil && len(snap.SimilarUserIDs) > 0 {
		similarCounts, err = s.engagement.CountBySimilarUsers(ctx, postIDs, snap.SimilarUserIDs)
		if err != nil {
			return nil, pkg.WrapStore(err)
		}
	}

	factors := make(map[uint64]ranking.PostSignals, len(eligible))
	scored := make([]ranking.Scored, 0, len(eligible))
	for _, p := range eligible {
		sig := ranking.PostSignals{Engagement: engagement[p.ID]}
		if snap != nil {
			sig.SimilarUserEngagement = similarCounts[p.ID]
			if c, ok := communities[p.CommunityID]; ok {
				sig.InterestOverlap = ranking.Overlap(snap.Interests, c.Interests)
			}
		}
		factors[p.ID] = sig
		scored = append(scored, ranking.Scored{ID: p.ID, Score: ranking.TrendingScore(sig)})
	}

	ranking.Order(scored)
	pageItems := ranking.Slice(scored, page, limit)

	items := make([]ScoredPost, 0, len(pageItems))
	for _, sc := range pageItems {
		sig := factors[sc.ID]
		items = append(items, ScoredPost{
			Post:                  byID[sc.ID],
			Score:                 sc.Score,
			SimilarUserEngagement: sig.SimilarUserEngagement,
			InterestOverlap:       sig.InterestOverlap,
		})
	}

	return &PostPage{
		Items:      items,
		Pagination: ranking.NewEnvelope(int64(len(scored)), page, limit),
	}, nil
}

// eligiblePost: public+free communities are visible to everyone; anything
// else requires an active membership held by the viewer.
func eligiblePost(c model.Community, snap *Snapshot) bool {
	if c.Visibility == model.VisibilityPublic && c.MembershipType == model.MembershipFree {
		return true
	}
	return snap.IsActiveMember(c.ID)
}
