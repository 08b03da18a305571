package service

import (
	"context"

	"communehub/internal/pkg"
	"communehub/internal/ranking"
)

// maxSimilarUsers bounds the similar-user set. The resolver truncates after
// ordering by user ID so the snapshot stays deterministic and the engagement
// IN query stays bounded.
const maxSimilarUsers = 1000

// Snapshot holds the personalization signals for one ranking request. It is
// computed once up front; every candidate in the request is scored against
// the same snapshot.
type Snapshot struct {
	ViewerID           uint64
	Interests          []string
	SimilarUserIDs     []uint64
	ActiveCommunityIDs map[uint64]struct{}
}

func (s *Snapshot) IsActiveMember(communityID uint64) bool {
	if s == nil {
		return false
	}
	_, ok := s.ActiveCommunityIDs[communityID]
	return ok
}

// PersonalizationResolver loads the viewer's interest set, similar users and
// active memberships.
type PersonalizationResolver struct {
	users       UserStore
	memberships MembershipStore
}

func NewPersonalizationResolver(users UserStore, memberships MembershipStore) *PersonalizationResolver {
	return &PersonalizationResolver{users: users, memberships: memberships}
}

// Resolve builds the snapshot for a viewer. Unknown viewers fail with not
// found; an empty interest set is valid and just yields zero boosts.
func (r *PersonalizationResolver) Resolve(ctx context.Context, viewerID uint64) (*Snapshot, error) {
	user, err := r.users.FindByID(ctx, viewerID)
	if err != nil {
		return nil, pkg.WrapStore(err)
	}

	interests, err := ranking.NormalizeInterests(user.Interests)
	if err != nil {
		// Stored interests passed validation on write; a failure here means
		// the row was mangled out of band. Degrade to no personalization.
		interests = nil
	}

	similar, err := r.users.SimilarUserIDs(ctx, viewerID, interests, maxSimilarUsers)
	if err != nil {
		return nil, pkg.WrapStore(err)
	}

	active, err := r.memberships.ActiveCommunityIDs(ctx, viewerID)
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	activeSet := make(map[uint64]struct{}, len(active))
	for _, id := range active {
		activeSet[id] = struct{}{}
	}

	return &Snapshot{
		ViewerID:           viewerID,
		Interests:          interests,
		SimilarUserIDs:     similar,
		ActiveCommunityIDs: activeSet,
	}, nil
}
