package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	CounterTTL          = 24 * time.Hour
	LockTTL             = 300 * time.Millisecond
	LikeCntKeyPrefix    = "post:cnt:likes"    // 帖子点赞计数缓存
	CommentCntKeyPrefix = "post:cnt:comments" // 帖子评论计数缓存
	LockKeyPrefix       = "lock:post:cnt"     // 回源重建用的分布式锁
)

// CounterCacheRepository 帖子计数的读缓存。
// 写路径只做失效（删Key），由读侧拿锁回源重建，避免缓存和库里的计数打架
type CounterCacheRepository struct {
	cntTTL time.Duration
}

type DistLock struct {
	RDB *redis.Client
}

func NewCounterCacheRepository() *CounterCacheRepository {
	return &CounterCacheRepository{cntTTL: CounterTTL}
}

func likeCntKey(postID uint64) string {
	return fmt.Sprintf("%s:%d", LikeCntKeyPrefix, postID)
}

func commentCntKey(postID uint64) string {
	return fmt.Sprintf("%s:%d", CommentCntKeyPrefix, postID)
}

// GetCounts 读取缓存的两个计数，任一缺失都按未命中处理
func (r *CounterCacheRepository) GetCounts(ctx context.Context, postID uint64) (likes, comments int64, ok bool, err error) {
	likes, err = Client.Get(ctx, likeCntKey(postID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, err
	}
	comments, err = Client.Get(ctx, commentCntKey(postID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, err
	}
	return likes, comments, true, nil
}

// SetCounts 回填计数
func (r *CounterCacheRepository) SetCounts(ctx context.Context, postID uint64, likes, comments int64) error {
	if err := Client.Set(ctx, likeCntKey(postID), likes, r.cntTTL).Err(); err != nil {
		return err
	}
	return Client.Set(ctx, commentCntKey(postID), comments, r.cntTTL).Err()
}

// Invalidate 删计数Key，支持可选延迟二删，抵消并发回填窗口的脏数据
func (r *CounterCacheRepository) Invalidate(ctx context.Context, postID uint64, delay ...time.Duration) error {
	keys := []string{likeCntKey(postID), commentCntKey(postID)}
	if err := Client.Del(ctx, keys...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(delay) > 0 && delay[0] > 0 {
		d := delay[0]
		go func() {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			_ = Client.Del(context.Background(), keys...).Err()
		}()
	}
	return nil
}

// Acquire 请求加分布式锁
func (l *DistLock) Acquire(ctx context.Context, postID uint64, token string) (bool, error) {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, postID)
	return l.RDB.SetNX(ctx, key, token, LockTTL).Result()
}

// Release 用lua保证原子性
func (l *DistLock) Release(ctx context.Context, postID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, postID)
	_, err := redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`).Run(ctx, l.RDB, []string{key}, token).Result()
	return err
}
