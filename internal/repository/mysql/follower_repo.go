package mysql

import (
	"context"
	"encoding/json"
	"time"

	"worknet/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowerRepository struct {
	DB *gorm.DB
}

// Follow 幂等关注：已关注时不报错，changed=false。
// 状态真正变化时在同一事务内写 outbox。
func (r *FollowerRepository) Follow(ctx context.Context, userID, companyID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&model.CompanyFollower{
			CompanyID: companyID,
			UserID:    userID,
			CreatedAt: time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return r.insertOutbox(tx, "follow", companyID, userID)
	})
	return changed, err
}

// Unfollow 幂等取关：从未关注时不报错，changed=false
func (r *FollowerRepository) Unfollow(ctx context.Context, userID, companyID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("company_id = ? AND user_id = ?", companyID, userID).
			Delete(&model.CompanyFollower{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return r.insertOutbox(tx, "unfollow", companyID, userID)
	})
	return changed, err
}

func (r *FollowerRepository) IsFollowing(ctx context.Context, userID, companyID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.CompanyFollower{}).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		Count(&n).Error
	return n > 0, err
}

// FollowedCompanyIDs 用户关注的全部公司 id，feed 过滤集合的来源
func (r *FollowerRepository) FollowedCompanyIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).
		Model(&model.CompanyFollower{}).
		Where("user_id = ?", userID).
		Order("company_id ASC").
		Pluck("company_id", &ids).Error
	return ids, err
}

func (r *FollowerRepository) FollowerCount(ctx context.Context, companyID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&model.CompanyFollower{}).
		Where("company_id = ?", companyID).
		Count(&n).Error
	return n, err
}

func (r *FollowerRepository) insertOutbox(tx *gorm.DB, event string, companyID, userID uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"company_id": companyID,
		"user_id":    userID,
	})
	return tx.Create(&model.FollowOutbox{
		EventType: event,
		CompanyID: companyID,
		UserID:    userID,
		Payload:   string(payload),
		Status:    0,
	}).Error
}
