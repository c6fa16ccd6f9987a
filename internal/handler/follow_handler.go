package handler

import (
	"net/http"
	"strconv"

	"worknet/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	svc *service.FollowService
}

func NewFollowHandler() *FollowHandler {
	return &FollowHandler{
		svc: service.NewFollowService(),
	}
}

// Follow 关注公司，幂等，changed 表示本次是否产生变化
func (h *FollowHandler) Follow(c *gin.Context) {
	companyID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	changed, err := h.svc.Follow(c.Request.Context(), userIDFromCtx(c), companyID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": true, "changed": changed})
}

// Unfollow 取消关注，未关注时为空操作
func (h *FollowHandler) Unfollow(c *gin.Context) {
	companyID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	changed, err := h.svc.Unfollow(c.Request.Context(), userIDFromCtx(c), companyID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": false, "changed": changed})
}

func (h *FollowHandler) IsFollowing(c *gin.Context) {
	companyID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	following, err := h.svc.IsFollowing(c.Request.Context(), userIDFromCtx(c), companyID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}

func (h *FollowHandler) FollowedCompanies(c *gin.Context) {
	ids, err := h.svc.FollowedCompanyIDs(c.Request.Context(), userIDFromCtx(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company_ids": ids})
}

func (h *FollowHandler) FollowerCount(c *gin.Context) {
	companyID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	count, err := h.svc.FollowerCount(c.Request.Context(), companyID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"follower_count": count})
}
