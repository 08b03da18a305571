package mysql

import (
	"context"
	"encoding/json"
	"errors"

	"communehub/internal/model"
	"communehub/internal/pkg"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.NotFoundf("user %d", id)
	}
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	return &user, nil
}

// SimilarUserIDs returns IDs of users sharing at least one interest tag with
// the given set, ordered by ID so snapshots are deterministic, capped at
// limit to bound the downstream IN query.
func (r *UserRepository) SimilarUserIDs(ctx context.Context, userID uint64, interests []string, limit int) ([]uint64, error) {
	if len(interests) == 0 {
		return nil, nil
	}
	encoded, err := json.Marshal(interests)
	if err != nil {
		return nil, err
	}
	var ids []uint64
	err = r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id <> ? AND JSON_OVERLAPS(interests, CAST(? AS JSON))", userID, string(encoded)).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	return ids, nil
}

func (r *UserRepository) UpdateInterests(ctx context.Context, userID uint64, interests []string) error {
	res := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("interests", interests)
	if res.Error != nil {
		return pkg.WrapStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return pkg.NotFoundf("user %d", userID)
	}
	return nil
}
