package middleware

import (
	"net/http"
	"strings"

	"worknet/internal/pkg"
	"worknet/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

// ContextUserIDKey 认证通过后注入 gin context 的用户 id 键
const ContextUserIDKey = "user_id"

// bearerToken 从 Authorization 头取出 Bearer token
func bearerToken(c *gin.Context) (string, bool) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": msg})
}

// AuthMiddleware 先验 jwt 签名，再和 redis 里的会话 token 比对。
// 单点登录：新登录会顶掉旧会话，与库里不一致的 token 一律按失效处理
func AuthMiddleware() gin.HandlerFunc {
	sessions := &redis.UserRepository{}
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims, err := pkg.ParseAccess(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		current, err := sessions.GetUserToken(claims.UserID)
		if err != nil || current != token {
			abortUnauthorized(c, "session replaced by a newer login")
			return
		}

		// 活跃会话滑动续期
		if err := sessions.ExtendUserToken(claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}
