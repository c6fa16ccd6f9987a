package model

import "time"

// FollowOutbox 关注事件发件箱，由后台任务异步投递到 Kafka
type FollowOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // follow / unfollow
	CompanyID uint64 `gorm:"not null"`
	UserID    uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (FollowOutbox) TableName() string { return "follow_outbox" }
