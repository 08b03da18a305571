package mysql

import (
	"context"

	"communehub/internal/model"
	"communehub/internal/pkg"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// ListPending returns the oldest pending engagement events, oldest first.
func (r *OutboxRepository) ListPending(ctx context.Context, batchSize int) ([]model.EngagementOutbox, error) {
	var list []model.EngagementOutbox
	err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error
	if err != nil {
		return nil, pkg.WrapStore(err)
	}
	return list, nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64) error {
	return pkg.WrapStore(r.DB.WithContext(ctx).Model(&model.EngagementOutbox{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error)
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return pkg.WrapStore(r.DB.WithContext(ctx).Model(&model.EngagementOutbox{}).
		Where("id = ?", id).
		Update("status", 1).Error)
}
