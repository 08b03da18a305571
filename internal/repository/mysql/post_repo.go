package mysql

import (
	"context"
	"errors"

	"communehub/internal/model"
	"communehub/internal/pkg"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return pkg.WrapStore(r.DB.WithContext(ctx).Create(post).Error)
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, "id = ? AND status = 0", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkg.NotFoundf("post %d", id)
	}
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	return &post, nil
}

func (r *PostRepository) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]model.Post, error) {
	out := make(map[uint64]model.Post, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []model.Post
	err := r.DB.WithContext(ctx).
		Where("id IN ? AND status = 0", ids).
		Find(&rows).Error
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	for _, p := range rows {
		out[p.ID] = p
	}
	return out, nil
}

// ListCandidates returns the full candidate set for a ranking request:
// every visible post, or every visible post of one community when scoped.
// Ranking needs the whole set before pagination, so no limit here.
func (r *PostRepository) ListCandidates(ctx context.Context, communityID uint64) ([]model.Post, error) {
	q := r.DB.WithContext(ctx).Where("status = 0")
	if communityID != 0 {
		q = q.Where("community_id = ?", communityID)
	}
	var rows []model.Post
	if err := q.Find(&rows).Error; err != nil {
		return nil, pkg.WrapStore(err)
	}
	return rows, nil
}
