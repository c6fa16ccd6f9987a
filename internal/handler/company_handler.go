package handler

import (
	"net/http"
	"strconv"

	"worknet/internal/service"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	svc *service.CompanyService
}

type CompanyCreateReq struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	ProfileImage string `json:"profile_image"`
}

type CompanyUpdateReq struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	ProfileImage *string `json:"profile_image"`
}

func NewCompanyHandler() *CompanyHandler {
	return &CompanyHandler{
		svc: service.NewCompanyService(),
	}
}

// pageParams 分页参数，page 从 0 开始
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return page, limit
}

// List 全量公司列表
func (h *CompanyHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	list, next, err := h.svc.ListAll(c.Request.Context(), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": list, "page": next})
}

// ListFollowed 当前用户关注的公司
func (h *CompanyHandler) ListFollowed(c *gin.Context) {
	page, limit := pageParams(c)
	list, next, err := h.svc.ListFollowed(c.Request.Context(), userIDFromCtx(c), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": list, "page": next})
}

// ListNotFollowed 当前用户尚未关注的公司
func (h *CompanyHandler) ListNotFollowed(c *gin.Context) {
	page, limit := pageParams(c)
	list, next, err := h.svc.ListNotFollowed(c.Request.Context(), userIDFromCtx(c), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": list, "page": next})
}

// Details 公司详情 + 是否已关注
func (h *CompanyHandler) Details(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	company, followed, err := h.svc.Details(c.Request.Context(), id, userIDFromCtx(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company, "is_followed": followed})
}

func (h *CompanyHandler) MetaData(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	company, err := h.svc.MetaData(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": company.ID, "name": company.Name, "profile_image": company.ProfileImage})
}

func (h *CompanyHandler) SearchByName(c *gin.Context) {
	list, err := h.svc.SearchByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": list})
}

func (h *CompanyHandler) ListByEmployer(c *gin.Context) {
	employerID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	list, err := h.svc.ListByEmployer(c.Request.Context(), employerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": list})
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req CompanyCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	company, err := h.svc.Create(c.Request.Context(), userIDFromCtx(c), req.Name, req.Description, req.ProfileImage)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": company.ID, "name": company.Name})
}

func (h *CompanyHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	var req CompanyUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.ProfileImage != nil {
		fields["profile_image"] = *req.ProfileImage
	}
	company, err := h.svc.Update(c.Request.Context(), id, fields)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	company, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": company.ID})
}
