package mysql

import (
	"context"

	"worknet/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// ListPending 按批量大小取待投递事件
func (r *OutboxRepository) ListPending(ctx context.Context, batchSize int) ([]model.FollowOutbox, error) {
	var list []model.FollowOutbox
	err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error
	return list, err
}

// MarkFailed 投递失败，计一次重试
func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.FollowOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.FollowOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}
