package mysql

import (
	"context"

	"worknet/internal/model"

	"gorm.io/gorm"
)

type PostCounterReconcilerRepo struct {
	DB *gorm.DB
}

// CounterRow 对账快照：帖子 id 加两列缓存计数
type CounterRow struct {
	ID            uint64
	LikesCount    int64
	CommentsCount int64
}

// ScanBatch 按 id keyset 扫描一批帖子的缓存计数
func (r *PostCounterReconcilerRepo) ScanBatch(ctx context.Context, batchSize int, lastID uint64) ([]CounterRow, uint64, error) {
	var list []CounterRow
	if err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Select("id", "likes_count", "comments_count").
		Where("id > ? AND status = 0", lastID).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, lastID, err
	}
	if len(list) == 0 {
		return nil, lastID, nil
	}
	return list, list[len(list)-1].ID, nil
}

// RealLikes 从点赞表数出真实值
func (r *PostCounterReconcilerRepo) RealLikes(ctx context.Context, postID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ?", postID).
		Count(&n).Error
	return n, err
}

func (r *PostCounterReconcilerRepo) RealComments(ctx context.Context, postID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&n).Error
	return n, err
}

// FixLikes 把缓存计数修正为真实值
func (r *PostCounterReconcilerRepo) FixLikes(ctx context.Context, postID uint64, real int64) error {
	return r.DB.WithContext(ctx).Model(&model.Post{}).Where("id = ?", postID).
		UpdateColumn("likes_count", real).Error
}

func (r *PostCounterReconcilerRepo) FixComments(ctx context.Context, postID uint64, real int64) error {
	return r.DB.WithContext(ctx).Model(&model.Post{}).Where("id = ?", postID).
		UpdateColumn("comments_count", real).Error
}
