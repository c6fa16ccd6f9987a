package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/p", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

// 没带 token 或带了坏 token 的请求在查会话之前就被挡下
func TestAuthRejectsBeforeSessionLookup(t *testing.T) {
	r := newAuthRouter()

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer ").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer not-a-jwt").Code)
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer abc.def.ghi")

	token, ok := bearerToken(c)
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	c.Request.Header.Set("Authorization", "abc.def.ghi")
	_, ok = bearerToken(c)
	assert.False(t, ok)
}
