package handler

import (
	"errors"
	"net/http"

	"worknet/internal/repository/mysql"
	"worknet/internal/service"

	"github.com/gin-gonic/gin"
)

func userIDFromCtx(c *gin.Context) uint64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}

// errStatus 统一的错误到状态码映射：
// 预期内的 NotFound/Conflict/校验错误原样透出，其余一律 500
func errStatus(err error) int {
	switch {
	case errors.Is(err, mysql.ErrPostNotFound),
		errors.Is(err, mysql.ErrCompanyNotFound),
		errors.Is(err, mysql.ErrLikeNotFound),
		errors.Is(err, mysql.ErrCommentNotFound),
		errors.Is(err, mysql.ErrSaveNotFound),
		errors.Is(err, mysql.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, mysql.ErrAlreadyLiked),
		errors.Is(err, mysql.ErrAlreadySaved):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidID),
		errors.Is(err, service.ErrEmptyComment),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrEmptyName):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoPermission):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(errStatus(err), gin.H{"msg": err.Error()})
}
