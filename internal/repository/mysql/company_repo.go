package mysql

import (
	"context"
	"errors"

	"worknet/internal/model"

	"gorm.io/gorm"
)

var ErrCompanyNotFound = errors.New("company not found")

type CompanyRepository struct {
	DB *gorm.DB
}

func (r *CompanyRepository) Create(ctx context.Context, c *model.Company) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *CompanyRepository) FindByID(ctx context.Context, id uint64) (*model.Company, error) {
	var c model.Company
	err := r.DB.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCompanyNotFound
	}
	return &c, err
}

// MetaData 只取展示用的轻量字段
func (r *CompanyRepository) MetaData(ctx context.Context, id uint64) (*model.Company, error) {
	var c model.Company
	err := r.DB.WithContext(ctx).
		Select("id", "name", "profile_image").
		First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCompanyNotFound
	}
	return &c, err
}

func (r *CompanyRepository) SearchByName(ctx context.Context, name string) ([]model.Company, error) {
	var list []model.Company
	err := r.DB.WithContext(ctx).
		Select("id", "name", "profile_image").
		Where("name LIKE ?", "%"+name+"%").
		Order("updated_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

// ListPage 全量分页，排序键 (updated_at, id) 双降序
// id 兜底排序必须保留：时间戳相同的行在并发写入下会跨页丢失或重复
func (r *CompanyRepository) ListPage(ctx context.Context, offset, limit int) ([]model.Company, error) {
	var list []model.Company
	err := r.DB.WithContext(ctx).
		Order("updated_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// ListByIDs 只取给定 id 集合内的公司，集合为空直接返回空列表
func (r *CompanyRepository) ListByIDs(ctx context.Context, ids []uint64, offset, limit int) ([]model.Company, error) {
	if len(ids) == 0 {
		return []model.Company{}, nil
	}
	var list []model.Company
	err := r.DB.WithContext(ctx).
		Where("id IN ?", ids).
		Order("updated_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// ListExcludingIDs 排除给定 id 集合，集合为空退化为全量分页
func (r *CompanyRepository) ListExcludingIDs(ctx context.Context, ids []uint64, offset, limit int) ([]model.Company, error) {
	q := r.DB.WithContext(ctx)
	if len(ids) > 0 {
		q = q.Where("id NOT IN ?", ids)
	}
	var list []model.Company
	err := q.
		Order("updated_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *CompanyRepository) ListByEmployer(ctx context.Context, employerID uint64) ([]model.Company, error) {
	var list []model.Company
	err := r.DB.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("updated_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

// EmployerIDs 批量取公司的雇主用户 id，时间线按作者过滤时使用
func (r *CompanyRepository) EmployerIDs(ctx context.Context, companyIDs []uint64) ([]uint64, error) {
	if len(companyIDs) == 0 {
		return nil, nil
	}
	var ids []uint64
	err := r.DB.WithContext(ctx).
		Model(&model.Company{}).
		Distinct("employer_id").
		Where("id IN ?", companyIDs).
		Pluck("employer_id", &ids).Error
	return ids, err
}

func (r *CompanyRepository) Update(ctx context.Context, id uint64, fields map[string]any) (*model.Company, error) {
	res := r.DB.WithContext(ctx).
		Model(&model.Company{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrCompanyNotFound
	}
	return r.FindByID(ctx, id)
}

// DeleteByID 返回被删除的公司，不存在时报 ErrCompanyNotFound
func (r *CompanyRepository) DeleteByID(ctx context.Context, id uint64) (*model.Company, error) {
	var c model.Company
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCompanyNotFound
			}
			return err
		}
		if err := tx.Delete(&model.Company{}, id).Error; err != nil {
			return err
		}
		// 公司删了，粉丝关系一起清掉
		return tx.Where("company_id = ?", id).Delete(&model.CompanyFollower{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}
