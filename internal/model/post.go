package model

import "time"

type Post struct {
	ID            uint64  `gorm:"primaryKey;index:idx_post_time_id,priority:2,sort:desc"`
	AuthorID      uint64  `gorm:"not null;index:idx_author_time"`
	Content       string  `gorm:"type:text"`
	Media         string  `gorm:"type:text"` // 媒体引用，逗号分隔
	SharedFromID  *uint64 `gorm:"index"`     // 转发来源帖子，原创为 NULL
	Status        int     `gorm:"not null;default:0"` // 0=normal 1=deleted
	LikesCount    int64   `gorm:"not null;default:0"`
	CommentsCount int64   `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"index:idx_author_time"`
	UpdatedAt     time.Time `gorm:"index:idx_post_time_id,priority:1,sort:desc"`
}
