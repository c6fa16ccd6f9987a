package mysql

import (
	"context"
	"errors"
	"log"
	"time"

	"worknet/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrLikeNotFound    = errors.New("like not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrSaveNotFound    = errors.New("save not found")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrAlreadySaved    = errors.New("post already saved")
)

// InteractionRepository 是帖子计数的唯一写入方。
// 所有动计数的写操作都在单个事务里先 select for update 锁住帖子行，
// 计数与点赞/评论行要么一起提交要么一起回滚，读侧不会看到撕裂状态。
type InteractionRepository struct {
	DB *gorm.DB
}

func lockPost(tx *gorm.DB, postID uint64) (*model.Post, error) {
	var post model.Post
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&post, "id = ? AND status = 0", postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// AddLike 点赞并原子 +1 likes_count，(post_id, user_id) 重复时报 ErrAlreadyLiked
func (r *InteractionRepository) AddLike(ctx context.Context, postID, userID uint64, now time.Time) (*model.Like, *model.Post, error) {
	var (
		like model.Like
		post *model.Post
	)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if post, err = lockPost(tx, postID); err != nil {
			return err
		}
		var n int64
		if err = tx.Model(&model.Like{}).
			Where("post_id = ? AND user_id = ?", postID, userID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadyLiked
		}
		like = model.Like{PostID: postID, UserID: userID, CreatedAt: now}
		if err = tx.Create(&like).Error; err != nil {
			return err
		}
		if err = tx.Model(&model.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error; err != nil {
			return err
		}
		post.LikesCount++
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &like, post, nil
}

// DeleteLike 删除点赞并 -1 likes_count。计数已经是 0 时只记一条漂移日志，
// 夹住不减成负数，不让删除失败
func (r *InteractionRepository) DeleteLike(ctx context.Context, postID, likeID uint64) (*model.Like, error) {
	var like model.Like
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := lockPost(tx, postID)
		if err != nil {
			return err
		}
		if err = tx.First(&like, "id = ? AND post_id = ?", likeID, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLikeNotFound
			}
			return err
		}
		if err = tx.Delete(&model.Like{}, like.ID).Error; err != nil {
			return err
		}
		if post.LikesCount == 0 {
			log.Printf("counter drift: post=%d likes_count already 0 on unlike", postID)
			return nil
		}
		return tx.Model(&model.Post{}).
			Where("id = ?", postID).
			UpdateColumn("likes_count", gorm.Expr("CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END")).
			Error
	})
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// AddComment 评论并原子 +1 comments_count
func (r *InteractionRepository) AddComment(ctx context.Context, postID, userID uint64, body string, now time.Time) (*model.Comment, *model.Post, error) {
	var (
		comment model.Comment
		post    *model.Post
	)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if post, err = lockPost(tx, postID); err != nil {
			return err
		}
		comment = model.Comment{PostID: postID, UserID: userID, Body: body, CreatedAt: now, UpdatedAt: now}
		if err = tx.Create(&comment).Error; err != nil {
			return err
		}
		if err = tx.Model(&model.Post{}).
			Where("id = ?", postID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error; err != nil {
			return err
		}
		post.CommentsCount++
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &comment, post, nil
}

// UpdateComment 只改正文，不动计数。条件化 UPDATE 一步到位，
// 没改到行（已被并发删除）就按不存在报，不回传旧内存值
func (r *InteractionRepository) UpdateComment(ctx context.Context, postID, commentID uint64, body string) (*model.Comment, error) {
	res := r.DB.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ? AND post_id = ?", commentID, postID).
		Update("body", body)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrCommentNotFound
	}

	var comment model.Comment
	if err := r.DB.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment 删除评论并 -1 comments_count，漂移策略同 DeleteLike
func (r *InteractionRepository) DeleteComment(ctx context.Context, postID, commentID uint64) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := lockPost(tx, postID)
		if err != nil {
			return err
		}
		if err = tx.First(&comment, "id = ? AND post_id = ?", commentID, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentNotFound
			}
			return err
		}
		if err = tx.Delete(&model.Comment{}, comment.ID).Error; err != nil {
			return err
		}
		if post.CommentsCount == 0 {
			log.Printf("counter drift: post=%d comments_count already 0 on delete", postID)
			return nil
		}
		return tx.Model(&model.Post{}).
			Where("id = ?", postID).
			UpdateColumn("comments_count", gorm.Expr("CASE WHEN comments_count > 0 THEN comments_count - 1 ELSE 0 END")).
			Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// AddSave 收藏，(post_id, user_id) 唯一，不碰帖子计数。
// 锁帖子行把同一帖的并发收藏串行化，重复收藏稳定报 ErrAlreadySaved
// 而不是漏出底层唯一键冲突
func (r *InteractionRepository) AddSave(ctx context.Context, postID, userID uint64, now time.Time) (*model.Save, error) {
	var save model.Save
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockPost(tx, postID); err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&model.Save{}).
			Where("post_id = ? AND user_id = ?", postID, userID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAlreadySaved
		}
		save = model.Save{PostID: postID, UserID: userID, CreatedAt: now}
		return tx.Create(&save).Error
	})
	if err != nil {
		return nil, err
	}
	return &save, nil
}

func (r *InteractionRepository) DeleteSave(ctx context.Context, saveID uint64) (*model.Save, error) {
	var save model.Save
	err := r.DB.WithContext(ctx).First(&save, saveID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSaveNotFound
	}
	if err != nil {
		return nil, err
	}
	if err = r.DB.WithContext(ctx).Delete(&model.Save{}, saveID).Error; err != nil {
		return nil, err
	}
	return &save, nil
}

func (r *InteractionRepository) ListLikes(ctx context.Context, postID uint64) ([]model.Like, error) {
	var list []model.Like
	err := r.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *InteractionRepository) ListComments(ctx context.Context, postID uint64, offset, limit int) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *InteractionRepository) ListSaves(ctx context.Context, postID uint64) ([]model.Save, error) {
	var list []model.Save
	err := r.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	return list, err
}
