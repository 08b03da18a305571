package mysql

import (
	"context"
	"errors"

	"communehub/internal/model"
	"communehub/internal/pkg"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipRepository struct {
	DB *gorm.DB
}

// Create inserts the membership for a join. The check runs under a
// transaction with a FOR UPDATE read so two concurrent joins cannot both
// pass; the unique (user_id, community_id) index backstops the race anyway.
func (r *MembershipRepository) Create(ctx context.Context, m *model.Membership) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Membership
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND community_id = ?", m.UserID, m.CommunityID).
			First(&existing).Error
		if err == nil {
			return pkg.Conflictf("user %d already a member of community %d", m.UserID, m.CommunityID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(m).Error
	})
	return pkg.WrapStore(err)
}

func (r *MembershipRepository) Find(ctx context.Context, userID, communityID uint64) (*model.Membership, error) {
	var m model.Membership
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND community_id = ?", userID, communityID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.NotFoundf("membership user=%d community=%d", userID, communityID)
	}
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	return &m, nil
}

func (r *MembershipRepository) Save(ctx context.Context, m *model.Membership) error {
	return pkg.WrapStore(r.DB.WithContext(ctx).Save(m).Error)
}

// ActiveCommunityIDs lists the communities where the user's membership is
// currently active. Feeds the personalization snapshot and the eligibility
// filter.
func (r *MembershipRepository) ActiveCommunityIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).Model(&model.Membership{}).
		Where("user_id = ? AND status = ?", userID, model.StatusActive).
		Pluck("community_id", &ids).Error
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	return ids, nil
}

// MemberCommunityIDs lists every community the user has any membership row
// in, regardless of status. Suggestions exclude all of these.
func (r *MembershipRepository) MemberCommunityIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).Model(&model.Membership{}).
		Where("user_id = ?", userID).
		Pluck("community_id", &ids).Error
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	return ids, nil
}

// Leaderboard pages active memberships of a community by points descending,
// user ID ascending on ties.
func (r *MembershipRepository) Leaderboard(ctx context.Context, communityID uint64, offset, limit int) ([]model.Membership, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Membership{}).
		Where("community_id = ? AND status = ?", communityID, model.StatusActive)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, pkg.WrapStore(err)
	}

	var rows []model.Membership
	err := q.Order("level_points DESC, user_id ASC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, pkg.WrapStore(err)
	}
	return rows, total, nil
}
