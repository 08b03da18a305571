package service

import (
	"context"
	"time"

	"communehub/internal/model"
	"communehub/internal/pkg"
	"communehub/internal/ranking"
)

// recentActivityWindow is the lookback for the activity-level signal.
const recentActivityWindow = 30 * 24 * time.Hour

// ScoredCommunity is one community suggestion with its contributing factors.
type ScoredCommunity struct {
	Community            model.Community `json:"community"`
	Score                float64         `json:"score"`
	InterestOverlap      int             `json:"interestOverlap"`
	AvgEngagementPerPost float64         `json:"avgEngagementPerPost"`
	ActivityLevel        float64         `json:"activityLevel"`
	MemberCount          int64           `json:"memberCount"`
	PostCount            int64           `json:"postCount"`
}

type CommunityPage struct {
	Items      []ScoredCommunity `json:"items"`
	Pagination ranking.Envelope  `json:"pagination"`
}

// SuggestionService ranks communities the viewer has not joined by interest
// overlap, engagement and activity.
type SuggestionService struct {
	communities CommunityStore
	memberships MembershipStore
	users       UserStore
}

func NewSuggestionService(communities CommunityStore, memberships MembershipStore, users UserStore) *SuggestionService {
	return &SuggestionService{communities: communities, memberships: memberships, users: users}
}

// SuggestCommunities scores every community the viewer does not belong to
// and returns one page of the full ordering.
func (s *SuggestionService) SuggestCommunities(ctx context.Context, viewerID uint64, page, limit int) (*CommunityPage, error) {
	page, limit = ranking.NormalizePage(page, limit)

	viewer, err := s.users.FindByID(ctx, viewerID)
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	interests, err := ranking.NormalizeInterests(viewer.Interests)
	if err != nil {
		interests = nil
	}

	memberOf, err := s.memberships.MemberCommunityIDs(ctx, viewerID)
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	joined := make(map[uint64]struct{}, len(memberOf))
	for _, id := range memberOf {
		joined[id] = struct{}{}
	}

	all, err := s.communities.ListAll(ctx)
	if err != nil {
		return nil, pkg.WrapStore(err)
	}

	candidates := make([]model.Community, 0, len(all))
	ids := make([]uint64, 0, len(all))
	for _, c := range all {
		if _, member := joined[c.ID]; member {
			continue
		}
		candidates = append(candidates, c)
		ids = append(ids, c.ID)
	}

	stats, err := s.communities.Stats(ctx, ids, recentActivityWindow)
	if err != nil {
		return nil, pkg.WrapStore(err)
	}

	byID := make(map[uint64]ScoredCommunity, len(candidates))
	scored := make([]ranking.Scored, 0, len(candidates))
	for _, c := range candidates {
		st := stats[c.ID]
		sig := ranking.CommunitySignals{
			InterestOverlap:      ranking.Overlap(interests, c.Interests),
			AvgEngagementPerPost: ranking.AvgEngagementPerPost(st.TotalEngagement, st.PostCount),
			ActivityLevel:        ranking.ActivityLevel(st.RecentPostCount, st.MemberCount),
			Public:               c.Visibility == model.VisibilityPublic,
			Free:                 c.MembershipType == model.MembershipFree,
		}
		score := ranking.SuggestionScore(sig)
		byID[c.ID] = ScoredCommunity{
			Community:            c,
			Score:                score,
			InterestOverlap:      sig.InterestOverlap,
			AvgEngagementPerPost: sig.AvgEngagementPerPost,
			ActivityLevel:        sig.ActivityLevel,
			MemberCount:          st.MemberCount,
			PostCount:            st.PostCount,
		}
		scored = append(scored, ranking.Scored{ID: c.ID, Score: score})
	}

	ranking.Order(scored)
	pageItems := ranking.Slice(scored, page, limit)

	items := make([]ScoredCommunity, 0, len(pageItems))
	for _, sc := range pageItems {
		items = append(items, byID[sc.ID])
	}

	return &CommunityPage{
		Items:      items,
		Pagination: ranking.NewEnvelope(int64(len(scored)), page, limit),
	}, nil
}
