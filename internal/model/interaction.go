package model

import "time"

// Like 点赞记录，(post_id, user_id) 唯一，创建后不可修改
type Like struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	PostID    uint64 `gorm:"not null;index;uniqueIndex:uk_like_post_user"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_like_post_user"`
	CreatedAt time.Time
}

func (Like) TableName() string {
	return "post_likes"
}

type Comment struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	PostID    uint64 `gorm:"not null;index"`
	UserID    uint64 `gorm:"not null;index"`
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Comment) TableName() string {
	return "post_comments"
}

// Save 收藏记录，不影响帖子计数
type Save struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	PostID    uint64 `gorm:"not null;index;uniqueIndex:uk_save_post_user"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_save_post_user"`
	CreatedAt time.Time
}

func (Save) TableName() string {
	return "post_saves"
}
