package mysql

import (
	"context"
	"errors"

	"worknet/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, "id = ? AND status = 0", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	return &post, err
}

// ListPage 全量帖子分页，排序键与公司列表一致：(updated_at, id) 双降序
func (r *PostRepository) ListPage(ctx context.Context, offset, limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("updated_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// ListByAuthors 时间线查询：给定作者集合内的帖子，纯时间序
func (r *PostRepository) ListByAuthors(ctx context.Context, authorIDs []uint64, offset, limit int) ([]model.Post, error) {
	if len(authorIDs) == 0 {
		return []model.Post{}, nil
	}
	var list []model.Post
	err := r.DB.WithContext(ctx).
		Where("author_id IN ? AND status = 0", authorIDs).
		Order("updated_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// ListShares 某帖的转发列表，excludeIDs 内的帖子一律不出现
func (r *PostRepository) ListShares(ctx context.Context, postID uint64, excludeIDs []uint64) ([]model.Post, error) {
	q := r.DB.WithContext(ctx).
		Where("shared_from_id = ? AND status = 0", postID)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	var list []model.Post
	err := q.Order("updated_at DESC, id DESC").Find(&list).Error
	return list, err
}

// UpdateContent 仅作者可改，返回是否真的改到了行
func (r *PostRepository) UpdateContent(ctx context.Context, postID, authorID uint64, fields map[string]any) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND author_id = ? AND status = 0", postID, authorID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// SoftDelete 软删除，仅作者可删，幂等
func (r *PostRepository) SoftDelete(ctx context.Context, postID, authorID uint64) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND author_id = ? AND status = 0", postID, authorID).
		Update("status", 1)
	return res.RowsAffected, res.Error
}
