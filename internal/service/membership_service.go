package service

import (
	"context"
	"time"

	"communehub/internal/model"
	"communehub/internal/pkg"
	"communehub/internal/ranking"
)

// SubscriptionUpdate carries the fields of an updateSubscription call.
// Zero-valued fields leave the stored value in place.
type SubscriptionUpdate struct {
	Status    model.SubscriptionStatus `json:"status"`
	StartDate *time.Time               `json:"startDate"`
	EndDate   *time.Time               `json:"endDate"`
	Plan      string                   `json:"plan"`
	AutoRenew *bool                    `json:"autoRenew"`
}

// MembershipService owns the membership lifecycle: join, role and status
// changes, gamification points and the paid-subscription branch.
type MembershipService struct {
	memberships MembershipStore
	communities CommunityStore
	users       UserStore
	now         func() time.Time
}

func NewMembershipService(memberships MembershipStore, communities CommunityStore, users UserStore) *MembershipService {
	return &MembershipService{
		memberships: memberships,
		communities: communities,
		users:       users,
		now:         time.Now,
	}
}

// CreateCommunity creates a community owned by the acting user. The store
// inserts the owner's admin membership in the same transaction.
func (s *MembershipService) CreateCommunity(ctx context.Context, ownerID uint64, c *model.Community) (*model.Community, error) {
	if c.Name == "" {
		return nil, pkg.Validationf("community name required")
	}
	switch c.Visibility {
	case model.VisibilityPublic, model.VisibilityPrivate:
	case "":
		c.Visibility = model.VisibilityPublic
	default:
		return nil, pkg.Validationf("unknown visibility %q", c.Visibility)
	}
	switch c.MembershipType {
	case model.MembershipFree, model.MembershipPaid:
	case "":
		c.MembershipType = model.MembershipFree
	default:
		return nil, pkg.Validationf("unknown membership type %q", c.MembershipType)
	}
	interests, err := ranking.NormalizeInterests(c.Interests)
	if err != nil {
		return nil, err
	}
	c.Interests = interests

	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, pkg.WrapStore(err)
	}
	c.OwnerID = ownerID
	if err := s.communities.Create(ctx, c); err != nil {
		return nil, pkg.WrapStore(err)
	}
	return c, nil
}

// Join creates the membership for a user entering a community. The
// membership type is copied from the community at join time and never
// changes afterwards; paid communities start at subscriptionStatus=free
// until a payment lands through updateSubscription.
func (s *MembershipService) Join(ctx context.Context, userID, communityID uint64) (*model.Membership, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, pkg.WrapStore(err)
	}
	community, err := s.communities.FindByID(ctx, communityID)
	if err != nil {
		return nil, pkg.WrapStore(err)
	}

	now := s.now()
	m := &model.Membership{
		UserID:         userID,
		CommunityID:    communityID,
		Role:           model.RoleMember,
		Status:         model.StatusActive,
		MembershipType: community.MembershipType,
		Level:          model.MembershipLevel{CurrentLevel: 1},
		JoinedAt:       now,
	}
	if community.MembershipType == model.MembershipPaid {
		m.SubscriptionStatus = model.SubscriptionFree
		m.Subscription = &model.Subscription{
			StartDate: &now,
			Plan:      "basic",
			AutoRenew: false,
		}
	}

	// The store enforces uniqueness of (user, community); a second join for
	// the same pair comes back as a conflict.
	if err := s.memberships.Create(ctx, m); err != nil {
		return nil, pkg.WrapStore(err)
	}
	return m, nil
}

// UpdateRole promotes or demotes a member. Only an active admin of the same
// community may invoke it.
func (s *MembershipService) UpdateRole(ctx context.Context, actingUserID, targetUserID, communityID uint64, newRole model.Role) (*model.Membership, error) {
	if newRole != model.RoleMember && newRole != model.RoleAdmin {
		return nil, pkg.Validationf("unknown role %q", newRole)
	}

	acting, err := s.memberships.Find(ctx, actingUserID, communityID)
	if err != nil || !acting.CanPerformAdminActions() {
		return nil, pkg.Forbiddenf("user %d is not an active admin of community %d", actingUserID, communityID)
	}

	target, err := s.memberships.Find(ctx, targetUserID, communityID)
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	target.Role = newRole
	if err := s.memberships.Save(ctx, target); err != nil {
		return nil, pkg.WrapStore(err)
	}
	return target, nil
}

// UpdateStatus moves a membership between active / inactive / banned.
func (s *MembershipService) UpdateStatus(ctx context.Context, actingUserID, targetUserID, communityID uint64, newStatus model.MemberStatus) (*model.Membership, error) {
	switch newStatus {
	case model.StatusActive, model.StatusInactive, model.StatusBanned:
	default:
		return nil, pkg.Validationf("unknown status %q", newStatus)
	}

	acting, err := s.memberships.Find(ctx, actingUserID, communityID)
	if err != nil || !acting.CanPerformAdminActions() {
		return nil, pkg.Forbiddenf("user %d is not an active admin of community %d", actingUserID, communityID)
	}

	target, err := s.memberships.Find(ctx, targetUserID, communityID)
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	target.Status = newStatus
	if err := s.memberships.Save(ctx, target); err != nil {
		return nil, pkg.WrapStore(err)
	}
	return target, nil
}

// AddPoints applies a monotonic points increment and rederives level and
// progress. Negative amounts are rejected; zero is a no-op.
func (s *MembershipService) AddPoints(ctx context.Context, userID, communityID uint64, points int64) (*model.Membership, error) {
	if points < 0 {
		return nil, pkg.Validationf("points must be non-negative, got %d", points)
	}

	m, err := s.memberships.Find(ctx, userID, communityID)
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	if points == 0 {
		return m, nil
	}

	m.Level.AddPoints(points)
	if err := s.memberships.Save(ctx, m); err != nil {
		return nil, pkg.WrapStore(err)
	}
	return m, nil
}

// UpdateSubscription records a subscription change on a paid membership.
// Free memberships have no subscription sub-state to update.
func (s *MembershipService) UpdateSubscription(ctx context.Context, userID, communityID uint64, update SubscriptionUpdate) (*model.Membership, error) {
	m, err := s.memberships.Find(ctx, userID, communityID)
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	if m.MembershipType != model.MembershipPaid {
		return nil, pkg.InvalidStatef("cannot subscribe to a free community membership")
	}

	switch update.Status {
	case model.SubscriptionFree, model.SubscriptionPaid, model.SubscriptionExpired:
		m.SubscriptionStatus = update.Status
	case "":
		m.SubscriptionStatus = model.SubscriptionPaid
	default:
		return nil, pkg.Validationf("unknown subscription status %q", update.Status)
	}

	sub := m.Subscription
	if sub == nil {
		sub = &model.Subscription{}
	}
	// an unspecified start date always resets to now, even on an existing
	// subscription
	if update.StartDate != nil {
		sub.StartDate = update.StartDate
	} else {
		now := s.now()
		sub.StartDate = &now
	}
	if update.EndDate != nil {
		sub.EndDate = update.EndDate
	}
	if update.Plan != "" {
		sub.Plan = update.Plan
	}
	if update.AutoRenew != nil {
		sub.AutoRenew = *update.AutoRenew
	}
	m.Subscription = sub

	if err := s.memberships.Save(ctx, m); err != nil {
		return nil, pkg.WrapStore(err)
	}
	return m, nil
}

// Leaderboard pages a community's active members by points.
func (s *MembershipService) Leaderboard(ctx context.Context, communityID uint64, page, limit int) ([]model.Membership, ranking.Envelope, error) {
	page, limit = ranking.NormalizePage(page, limit)
	rows, total, err := s.memberships.Leaderboard(ctx, communityID, (page-1)*limit, limit)
	if err != nil {
		return nil, ranking.Envelope{}, pkg.WrapStore(err)
	}
	return rows, ranking.NewEnvelope(total, page, limit), nil
}

// DeleteCommunity removes a community the acting user owns, cascading over
// memberships and payment methods in one transaction.
func (s *MembershipService) DeleteCommunity(ctx context.Context, actingUserID, communityID uint64) error {
	community, err := s.communities.FindByID(ctx, communityID)
	if err != nil {
		return pkg.WrapStore(err)
	}
	if community.OwnerID != actingUserID {
		return pkg.Forbiddenf("only the owner can delete community %d", communityID)
	}
	return pkg.WrapStore(s.communities.DeleteCascade(ctx, communityID))
}

// UpdateUserInterests normalizes and stores a user's interest set.
func (s *MembershipService) UpdateUserInterests(ctx context.Context, userID uint64, interests []string) ([]string, error) {
	normalized, err := ranking.NormalizeInterests(interests)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateInterests(ctx, userID, normalized); err != nil {
		return nil, pkg.WrapStore(err)
	}
	return normalized, nil
}
