package service

import (
	"context"
	"strings"
	"time"

	"worknet/internal/model"
	"worknet/internal/repository/mysql"
	"worknet/internal/repository/redis"
)

// InteractionStore 互动台账的存储契约，计数一致性由实现方的事务保证
type InteractionStore interface {
	AddLike(ctx context.Context, postID, userID uint64, now time.Time) (*model.Like, *model.Post, error)
	DeleteLike(ctx context.Context, postID, likeID uint64) (*model.Like, error)
	AddComment(ctx context.Context, postID, userID uint64, body string, now time.Time) (*model.Comment, *model.Post, error)
	UpdateComment(ctx context.Context, postID, commentID uint64, body string) (*model.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID uint64) (*model.Comment, error)
	AddSave(ctx context.Context, postID, userID uint64, now time.Time) (*model.Save, error)
	DeleteSave(ctx context.Context, saveID uint64) (*model.Save, error)
	ListLikes(ctx context.Context, postID uint64) ([]model.Like, error)
	ListComments(ctx context.Context, postID uint64, offset, limit int) ([]model.Comment, error)
	ListSaves(ctx context.Context, postID uint64) ([]model.Save, error)
}

// CounterCache 帖子计数缓存，写路径只用 Invalidate
type CounterCache interface {
	GetCounts(ctx context.Context, postID uint64) (likes, comments int64, ok bool, err error)
	SetCounts(ctx context.Context, postID uint64, likes, comments int64) error
	Invalidate(ctx context.Context, postID uint64, delay ...time.Duration) error
}

// cacheDoubleDeleteDelay 延迟二删的间隔，抵消并发回填窗口
const cacheDoubleDeleteDelay = 500 * time.Millisecond

// InteractionService 点赞/评论/收藏的唯一写入口。
// created_at 在这里显式赋值，不依赖 schema 默认值
type InteractionService struct {
	store InteractionStore
	cache CounterCache
}

func NewInteractionService() *InteractionService {
	return &InteractionService{
		store: &mysql.InteractionRepository{DB: mysql.DB},
		cache: redis.NewCounterCacheRepository(),
	}
}

func (s *InteractionService) AddLike(ctx context.Context, postID, userID uint64) (*model.Like, *model.Post, error) {
	if postID == 0 || userID == 0 {
		return nil, nil, ErrInvalidID
	}
	like, post, err := s.store.AddLike(ctx, postID, userID, time.Now())
	if err != nil {
		return nil, nil, err
	}
	_ = s.cache.Invalidate(ctx, postID, cacheDoubleDeleteDelay)
	return like, post, nil
}

func (s *InteractionService) DeleteLike(ctx context.Context, postID, likeID uint64) (*model.Like, error) {
	if postID == 0 || likeID == 0 {
		return nil, ErrInvalidID
	}
	like, err := s.store.DeleteLike(ctx, postID, likeID)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Invalidate(ctx, postID, cacheDoubleDeleteDelay)
	return like, nil
}

func (s *InteractionService) AddComment(ctx context.Context, postID, userID uint64, body string) (*model.Comment, *model.Post, error) {
	if postID == 0 || userID == 0 {
		return nil, nil, ErrInvalidID
	}
	if strings.TrimSpace(body) == "" {
		return nil, nil, ErrEmptyComment
	}
	comment, post, err := s.store.AddComment(ctx, postID, userID, body, time.Now())
	if err != nil {
		return nil, nil, err
	}
	_ = s.cache.Invalidate(ctx, postID, cacheDoubleDeleteDelay)
	return comment, post, nil
}

// UpdateComment 只改正文，不动计数，缓存无需失效
func (s *InteractionService) UpdateComment(ctx context.Context, postID, commentID uint64, body string) (*model.Comment, error) {
	if postID == 0 || commentID == 0 {
		return nil, ErrInvalidID
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyComment
	}
	return s.store.UpdateComment(ctx, postID, commentID, body)
}

func (s *InteractionService) DeleteComment(ctx context.Context, postID, commentID uint64) (*model.Comment, error) {
	if postID == 0 || commentID == 0 {
		return nil, ErrInvalidID
	}
	comment, err := s.store.DeleteComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Invalidate(ctx, postID, cacheDoubleDeleteDelay)
	return comment, nil
}

// AddSave 收藏不影响帖子计数，缓存不动
func (s *InteractionService) AddSave(ctx context.Context, postID, userID uint64) (*model.Save, error) {
	if postID == 0 || userID == 0 {
		return nil, ErrInvalidID
	}
	return s.store.AddSave(ctx, postID, userID, time.Now())
}

func (s *InteractionService) DeleteSave(ctx context.Context, saveID uint64) (*model.Save, error) {
	if saveID == 0 {
		return nil, ErrInvalidID
	}
	return s.store.DeleteSave(ctx, saveID)
}

func (s *InteractionService) ListLikes(ctx context.Context, postID uint64) ([]model.Like, error) {
	if postID == 0 {
		return nil, ErrInvalidID
	}
	return s.store.ListLikes(ctx, postID)
}

func (s *InteractionService) ListComments(ctx context.Context, postID uint64, offset, limit int) ([]model.Comment, error) {
	if postID == 0 {
		return nil, ErrInvalidID
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.ListComments(ctx, postID, offset, limit)
}

func (s *InteractionService) ListSaves(ctx context.Context, postID uint64) ([]model.Save, error) {
	if postID == 0 {
		return nil, ErrInvalidID
	}
	return s.store.ListSaves(ctx, postID)
}
