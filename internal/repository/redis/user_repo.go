package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	UserTokenPrefix = "login:user:token"
	UserTokenExpire = 60 * 30
)

// UserRepository 单点登录 token 存储，同一用户只保留最新一个 access token
type UserRepository struct{}

func (r *UserRepository) AddUserToken(userID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", UserTokenPrefix, userID)
	if err := Client.Set(context.Background(), key, token, time.Second*UserTokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *UserRepository) GetUserToken(userID uint64) (string, error) {
	key := fmt.Sprintf("%s:%d", UserTokenPrefix, userID)
	token, err := Client.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// ExtendUserToken 校验通过后给 token 续期
func (r *UserRepository) ExtendUserToken(userID uint64) error {
	key := fmt.Sprintf("%s:%d", UserTokenPrefix, userID)
	if _, err := Client.Expire(context.Background(), key, time.Second*UserTokenExpire).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *UserRepository) DeleteUserToken(userID uint64) error {
	key := fmt.Sprintf("%s:%d", UserTokenPrefix, userID)
	if err := Client.Del(context.Background(), key).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
