package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultEmailCodeTTL = 5 * time.Minute
	EmailCodePrefix     = "email:code"
)

var (
	ErrEmailCodeNotFound  = errors.New("email code not found")
	ErrEmailCodeSetFailed = errors.New("email code set failed")
	ErrEmailCodeDelFailed = errors.New("email code delete failed")
)

type EmailRepository struct{}

func codeKey(scope, email string) string {
	return fmt.Sprintf("%s:%s:%s", EmailCodePrefix, scope, email)
}

// SetCode 写入验证码，带 TTL。邮件发送成功后才调用，失败的发送不留码
func (e *EmailRepository) SetCode(scope, email, code string) error {
	if err := Client.Set(context.Background(), codeKey(scope, email), code, DefaultEmailCodeTTL).Err(); err != nil {
		return ErrEmailCodeSetFailed
	}
	return nil
}

func (e *EmailRepository) GetCode(scope, email string) (string, error) {
	val, err := Client.Get(context.Background(), codeKey(scope, email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrEmailCodeNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// DeleteCode 验证通过后一次性删除（幂等）
func (e *EmailRepository) DeleteCode(scope, email string) error {
	if err := Client.Del(context.Background(), codeKey(scope, email)).Err(); err != nil {
		return ErrEmailCodeDelFailed
	}
	return nil
}
