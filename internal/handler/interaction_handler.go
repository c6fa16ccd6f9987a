package handler

import (
	"net/http"
	"strconv"

	"worknet/internal/service"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	svc *service.InteractionService
}

type CommentReq struct {
	Body string `json:"body" binding:"required"`
}

func NewInteractionHandler() *InteractionHandler {
	return &InteractionHandler{
		svc: service.NewInteractionService(),
	}
}

// AddLike 点赞，重复点赞返回 409
func (h *InteractionHandler) AddLike(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	like, post, err := h.svc.AddLike(c.Request.Context(), postID, userIDFromCtx(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"like": like, "likes_count": post.LikesCount})
}

func (h *InteractionHandler) DeleteLike(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	likeID, _ := strconv.ParseUint(c.Param("likeId"), 10, 64)
	like, err := h.svc.DeleteLike(c.Request.Context(), postID, likeID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"like": like})
}

func (h *InteractionHandler) ListLikes(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	list, err := h.svc.ListLikes(c.Request.Context(), postID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": list})
}

func (h *InteractionHandler) AddComment(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	comment, post, err := h.svc.AddComment(c.Request.Context(), postID, userIDFromCtx(c), req.Body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment, "comments_count": post.CommentsCount})
}

func (h *InteractionHandler) UpdateComment(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	commentID, _ := strconv.ParseUint(c.Param("commentId"), 10, 64)
	var req CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	comment, err := h.svc.UpdateComment(c.Request.Context(), postID, commentID, req.Body)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

func (h *InteractionHandler) DeleteComment(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	commentID, _ := strconv.ParseUint(c.Param("commentId"), 10, 64)
	comment, err := h.svc.DeleteComment(c.Request.Context(), postID, commentID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

func (h *InteractionHandler) ListComments(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	offset, _ := strconv.Atoi(c.Query("offset"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.svc.ListComments(c.Request.Context(), postID, offset, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": list})
}

// AddSave 收藏帖子，重复收藏返回 409
func (h *InteractionHandler) AddSave(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	save, err := h.svc.AddSave(c.Request.Context(), postID, userIDFromCtx(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"save": save})
}

func (h *InteractionHandler) DeleteSave(c *gin.Context) {
	saveID, _ := strconv.ParseUint(c.Param("saveId"), 10, 64)
	save, err := h.svc.DeleteSave(c.Request.Context(), saveID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"save": save})
}

func (h *InteractionHandler) ListSaves(c *gin.Context) {
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	list, err := h.svc.ListSaves(c.Request.Context(), postID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"saves": list})
}
