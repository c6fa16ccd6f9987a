package model

import "time"

type Company struct {
	ID           uint64 `gorm:"primaryKey;index:idx_company_time_id,priority:2,sort:desc"`
	Name         string `gorm:"size:64;not null;index"`
	Description  string `gorm:"type:text"`
	ProfileImage string `gorm:"size:255"`
	EmployerID   uint64 `gorm:"not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time `gorm:"index:idx_company_time_id,priority:1,sort:desc"`
}

// CompanyFollower 公司粉丝关系表，一行一个 (company_id, user_id) 对
// 取关即删行，不保留空记录
type CompanyFollower struct {
	ID        uint64 `gorm:"primaryKey"`
	CompanyID uint64 `gorm:"not null;index;uniqueIndex:uk_company_user"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_company_user"`
	CreatedAt time.Time
}

func (CompanyFollower) TableName() string {
	return "company_followers"
}
