package handler

import (
	"net/http"
	"strconv"
	"strings"

	"worknet/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.PostService
}

type PostCreateReq struct {
	Content string   `json:"content" binding:"required"`
	Media   []string `json:"media"`
}

type PostUpdateReq struct {
	Content string   `json:"content" binding:"required"`
	Media   []string `json:"media"`
}

type PostShareReq struct {
	Content string `json:"content"`
}

func NewPostHandler() *PostHandler {
	return &PostHandler{
		svc: service.NewPostService(),
	}
}

func (h *PostHandler) Create(c *gin.Context) {
	var req PostCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	post, err := h.svc.CreatePost(c.Request.Context(), userIDFromCtx(c), req.Content, req.Media, nil)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *PostHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	post, err := h.svc.GetPost(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// List 全量帖子流
func (h *PostHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	list, next, err := h.svc.ListAll(c.Request.Context(), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": list, "page": next})
}

// Timeline 关注公司雇主发布的帖子流
func (h *PostHandler) Timeline(c *gin.Context) {
	page, limit := pageParams(c)
	list, next, err := h.svc.ListTimeline(c.Request.Context(), userIDFromCtx(c), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": list, "page": next})
}

func (h *PostHandler) Share(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req PostShareReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	post, err := h.svc.SharePost(c.Request.Context(), userIDFromCtx(c), id, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// Shares 查询某帖的转发，exclude 为逗号分隔的已见帖子 id
func (h *PostHandler) Shares(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var excludeIDs []uint64
	if raw := c.Query("exclude"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
			if err == nil {
				excludeIDs = append(excludeIDs, v)
			}
		}
	}
	list, err := h.svc.FindPostShares(c.Request.Context(), id, excludeIDs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": list})
}

// Counts 点赞与评论计数，优先走缓存
func (h *PostHandler) Counts(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	likes, comments, err := h.svc.Counts(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes_count": likes, "comments_count": comments})
}

func (h *PostHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req PostUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	post, err := h.svc.UpdatePost(c.Request.Context(), id, userIDFromCtx(c), req.Content, req.Media)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.DeletePost(c.Request.Context(), id, userIDFromCtx(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
