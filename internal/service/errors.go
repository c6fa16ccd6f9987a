package service

import "errors"

// 业务校验类错误，向上层按 400 映射；
// 存储层的 NotFound/Conflict 哨兵定义在 repository/mysql 里
var (
	ErrInvalidID    = errors.New("invalid id")
	ErrEmptyComment = errors.New("comment body required")
	ErrEmptyContent = errors.New("post content required")
	ErrEmptyName    = errors.New("company name required")
	ErrNoPermission = errors.New("no permission")
)
