package mysql

import (
	"context"
	"errors"
	"time"

	"communehub/internal/model"
	"communehub/internal/pkg"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

// Create inserts the community and its owner's admin membership in one
// transaction.
func (r *CommunityRepository) Create(ctx context.Context, c *model.Community) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		m := &model.Membership{
			UserID:         c.OwnerID,
			CommunityID:    c.ID,
			Role:           model.RoleAdmin,
			Status:         model.StatusActive,
			MembershipType: c.MembershipType,
			Level:          model.MembershipLevel{CurrentLevel: 1},
			JoinedAt:       time.Now(),
		}
		if c.MembershipType == model.MembershipPaid {
			m.SubscriptionStatus = model.SubscriptionFree
		}
		return tx.Create(m).Error
	})
	return pkg.WrapStore(err)
}

func (r *CommunityRepository) FindByID(ctx context.Context, id uint64) (*model.Community, error) {
	var c model.Community
	err := r.DB.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.NotFoundf("community %d", id)
	}
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	return &c, nil
}

func (r *CommunityRepository) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]model.Community, error) {
	out := make(map[uint64]model.Community, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []model.Community
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, pkg.WrapStore(err)
	}
	for _, c := range rows {
		out[c.ID] = c
	}
	return out, nil
}

// ListAll returns every community; suggestion ranking filters and scores the
// full set before paginating.
func (r *CommunityRepository) ListAll(ctx context.Context) ([]model.Community, error) {
	var rows []model.Community
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, pkg.WrapStore(err)
	}
	return rows, nil
}

// Stats aggregates post and membership signals for the given communities.
// Communities with no posts or members simply stay at zero in the result.
func (r *CommunityRepository) Stats(ctx context.Context, ids []uint64, recentWindow time.Duration) (map[uint64]model.CommunityStats, error) {
	out := make(map[uint64]model.CommunityStats, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	for _, id := range ids {
		out[id] = model.CommunityStats{CommunityID: id}
	}

	cutoff := time.Now().Add(-recentWindow)
	type postAgg struct {
		CommunityID     uint64
		PostCount       int64
		TotalEngagement int64
		RecentPostCount int64
	}
	var posts []postAgg
	err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Select(`community_id,
			COUNT(*) AS post_count,
			COALESCE(SUM(like_count + comment_count + share_count + views_count), 0) AS total_engagement,
			COALESCE(SUM(created_at > ?), 0) AS recent_post_count`, cutoff).
		Where("community_id IN ? AND status = 0", ids).
		Group("community_id").
		Scan(&posts).Error
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	for _, p := range posts {
		s := out[p.CommunityID]
		s.PostCount = p.PostCount
		s.TotalEngagement = p.TotalEngagement
		s.RecentPostCount = p.RecentPostCount
		out[p.CommunityID] = s
	}

	type memberAgg struct {
		CommunityID uint64
		MemberCount int64
	}
	var members []memberAgg
	err = r.DB.WithContext(ctx).Model(&model.Membership{}).
		Select("community_id, COUNT(*) AS member_count").
		Where("community_id IN ? AND status = ?", ids, model.StatusActive).
		Group("community_id").
		Scan(&members).Error
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	for _, m := range members {
		s := out[m.CommunityID]
		s.MemberCount = m.MemberCount
		out[m.CommunityID] = s
	}
	return out, nil
}

// DeleteCascade removes the community together with its memberships and
// payment methods. All three deletes commit together or not at all so no
// orphaned references survive a partial failure.
func (r *CommunityRepository) DeleteCascade(ctx context.Context, communityID uint64) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("community_id = ?", communityID).
			Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("community_id = ?", communityID).
			Delete(&model.CommunityPaymentMethod{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Community{}, communityID).Error
	})
	return pkg.WrapStore(err)
}
