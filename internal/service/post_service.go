package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"worknet/internal/model"
	"worknet/internal/repository/mysql"
	"worknet/internal/repository/redis"
)

// PostStore 帖子存储契约
type PostStore interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint64) (*model.Post, error)
	ListPage(ctx context.Context, offset, limit int) ([]model.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []uint64, offset, limit int) ([]model.Post, error)
	ListShares(ctx context.Context, postID uint64, excludeIDs []uint64) ([]model.Post, error)
	UpdateContent(ctx context.Context, postID, authorID uint64, fields map[string]any) (int64, error)
	SoftDelete(ctx context.Context, postID, authorID uint64) (int64, error)
}

// CounterLock 计数回源重建用的互斥锁
type CounterLock interface {
	Acquire(ctx context.Context, postID uint64, token string) (bool, error)
	Release(ctx context.Context, postID uint64, token string) error
}

type PostService struct {
	repo      PostStore
	companies CompanyStore
	follows   FollowStore
	cache     CounterCache
	lock      CounterLock
}

func NewPostService() *PostService {
	return &PostService{
		repo:      &mysql.PostRepository{DB: mysql.DB},
		companies: &mysql.CompanyRepository{DB: mysql.DB},
		follows:   &mysql.FollowerRepository{DB: mysql.DB},
		cache:     redis.NewCounterCacheRepository(),
		lock:      &redis.DistLock{RDB: redis.Client},
	}
}

// CreatePost 发帖。时间戳在这里显式赋值，保持与互动台账同一套约定
func (s *PostService) CreatePost(ctx context.Context, authorID uint64, content string, media []string, sharedFromID *uint64) (*model.Post, error) {
	if authorID == 0 {
		return nil, ErrInvalidID
	}
	if strings.TrimSpace(content) == "" && sharedFromID == nil {
		return nil, ErrEmptyContent
	}
	if sharedFromID != nil {
		// 转发必须指向真实存在的帖子
		if _, err := s.repo.FindByID(ctx, *sharedFromID); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	post := &model.Post{
		AuthorID:     authorID,
		Content:      content,
		Media:        strings.Join(media, ","),
		SharedFromID: sharedFromID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, postID uint64) (*model.Post, error) {
	if postID == 0 {
		return nil, ErrInvalidID
	}
	return s.repo.FindByID(ctx, postID)
}

// ListAll 全量帖子分页，约定同公司列表：page 从 0 开始，返回 page+1
func (s *PostService) ListAll(ctx context.Context, page, limit int) ([]model.Post, int, error) {
	offset, size, p := normalizePage(page, limit)
	list, err := s.repo.ListPage(ctx, offset, size)
	if err != nil {
		return nil, 0, err
	}
	return list, p + 1, nil
}

// ListTimeline 时间线：用户关注公司的雇主发的帖子，纯时间序，无权重
func (s *PostService) ListTimeline(ctx context.Context, userID uint64, page, limit int) ([]model.Post, int, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidID
	}
	offset, size, p := normalizePage(page, limit)
	companyIDs, err := s.follows.FollowedCompanyIDs(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	authorIDs, err := s.companies.EmployerIDs(ctx, companyIDs)
	if err != nil {
		return nil, 0, err
	}
	list, err := s.repo.ListByAuthors(ctx, authorIDs, offset, size)
	if err != nil {
		return nil, 0, err
	}
	return list, p + 1, nil
}

// SharePost 转发：生成一条指向原帖的新帖子
func (s *PostService) SharePost(ctx context.Context, userID, postID uint64, content string) (*model.Post, error) {
	if userID == 0 || postID == 0 {
		return nil, ErrInvalidID
	}
	return s.CreatePost(ctx, userID, content, nil, &postID)
}

// FindPostShares 某帖的转发列表，excludeIDs 里的帖子一律排除
func (s *PostService) FindPostShares(ctx context.Context, postID uint64, excludeIDs []uint64) ([]model.Post, error) {
	if postID == 0 {
		return nil, ErrInvalidID
	}
	return s.repo.ListShares(ctx, postID, excludeIDs)
}

// Counts 帖子计数读取：先查缓存，miss 时拿锁回源重建，
// 拿不到锁就短暂退避再读一次，避免全体打库
func (s *PostService) Counts(ctx context.Context, postID uint64) (likes, comments int64, err error) {
	if postID == 0 {
		return 0, 0, ErrInvalidID
	}
	if l, c, ok, err := s.cache.GetCounts(ctx, postID); err == nil && ok {
		return l, c, nil
	}

	token := fmt.Sprintf("%d-%d", postID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, postID, token)
	if got {
		defer func() {
			if err := s.lock.Release(ctx, postID, token); err != nil {
				log.Printf("release counter lock: post=%d err=%v", postID, err)
			}
		}()

		// 第二次检查，避免重复回源
		if l, c, ok, err := s.cache.GetCounts(ctx, postID); err == nil && ok {
			return l, c, nil
		}

		post, err := s.repo.FindByID(ctx, postID)
		if err != nil {
			return 0, 0, err
		}
		_ = s.cache.SetCounts(ctx, postID, post.LikesCount, post.CommentsCount)
		return post.LikesCount, post.CommentsCount, nil
	}

	select {
	case <-ctx.Done():
		return 0, 0, ctx.Err()
	case <-time.After(50 * time.Millisecond):
	}
	if l, c, ok, err := s.cache.GetCounts(ctx, postID); err == nil && ok {
		return l, c, nil
	}

	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return 0, 0, err
	}
	return post.LikesCount, post.CommentsCount, nil
}

// UpdatePost 仅作者可改
func (s *PostService) UpdatePost(ctx context.Context, postID, authorID uint64, content string, media []string) (*model.Post, error) {
	if postID == 0 || authorID == 0 {
		return nil, ErrInvalidID
	}
	fields := map[string]any{}
	if strings.TrimSpace(content) != "" {
		fields["content"] = content
	}
	if media != nil {
		fields["media"] = strings.Join(media, ",")
	}
	if len(fields) == 0 {
		return s.repo.FindByID(ctx, postID)
	}
	affected, err := s.repo.UpdateContent(ctx, postID, authorID, fields)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// 帖子不存在和无权限分开报
		if _, err := s.repo.FindByID(ctx, postID); err != nil {
			return nil, err
		}
		return nil, ErrNoPermission
	}
	return s.repo.FindByID(ctx, postID)
}

// DeletePost 幂等删除：已删除视为成功，仅无权限时报错
func (s *PostService) DeletePost(ctx context.Context, postID, authorID uint64) error {
	if postID == 0 || authorID == 0 {
		return ErrInvalidID
	}
	affected, err := s.repo.SoftDelete(ctx, postID, authorID)
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.repo.FindByID(ctx, postID); err != nil {
			return nil
		}
		return ErrNoPermission
	}
	_ = s.cache.Invalidate(ctx, postID)
	return nil
}
