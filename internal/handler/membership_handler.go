package handler

import (
	"net/http"
	"strconv"

	"communehub/internal/model"
	"communehub/internal/service"

	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	svc *service.MembershipService
}

func NewMembershipHandler(svc *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{svc: svc}
}

type createCommunityReq struct {
	Name           string               `json:"name" binding:"required"`
	Description    string               `json:"description"`
	Visibility     model.Visibility     `json:"visibility" binding:"omitempty,oneof=public private"`
	MembershipType model.MembershipType `json:"membershipType" binding:"omitempty,oneof=free paid"`
	Interests      []string             `json:"interests"`
}

// CreateCommunity creates a community owned by the authenticated user.
func (h *MembershipHandler) CreateCommunity(c *gin.Context) {
	ownerID := userIDFromCtx(c)

	var req createCommunityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	community, err := h.svc.CreateCommunity(c.Request.Context(), ownerID, &model.Community{
		Name:           req.Name,
		Description:    req.Description,
		Visibility:     req.Visibility,
		MembershipType: req.MembershipType,
		Interests:      req.Interests,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, community)
}

// Join adds the authenticated user to a community.
func (h *MembershipHandler) Join(c *gin.Context) {
	userID := userIDFromCtx(c)
	communityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || communityID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid community id"})
		return
	}

	m, err := h.svc.Join(c.Request.Context(), userID, communityID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

type updateRoleReq struct {
	UserID uint64     `json:"user_id" binding:"required"`
	Role   model.Role `json:"role" binding:"required,oneof=member admin"`
}

func (h *MembershipHandler) UpdateRole(c *gin.Context) {
	actingID := userIDFromCtx(c)
	communityID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var req updateRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	m, err := h.svc.UpdateRole(c.Request.Context(), actingID, req.UserID, communityID, req.Role)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type updateStatusReq struct {
	UserID uint64             `json:"user_id" binding:"required"`
	Status model.MemberStatus `json:"status" binding:"required,oneof=active inactive banned"`
}

func (h *MembershipHandler) UpdateStatus(c *gin.Context) {
	actingID := userIDFromCtx(c)
	communityID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	m, err := h.svc.UpdateStatus(c.Request.Context(), actingID, req.UserID, communityID, req.Status)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type addPointsReq struct {
	Points int64 `json:"points"`
}

func (h *MembershipHandler) AddPoints(c *gin.Context) {
	userID := userIDFromCtx(c)
	communityID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var req addPointsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	m, err := h.svc.AddPoints(c.Request.Context(), userID, communityID, req.Points)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MembershipHandler) UpdateSubscription(c *gin.Context) {
	userID := userIDFromCtx(c)
	communityID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var req service.SubscriptionUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	m, err := h.svc.UpdateSubscription(c.Request.Context(), userID, communityID, req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MembershipHandler) Leaderboard(c *gin.Context) {
	communityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || communityID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid community id"})
		return
	}
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	rows, env, err := h.svc.Leaderboard(c.Request.Context(), communityID, page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows, "pagination": env})
}

func (h *MembershipHandler) DeleteCommunity(c *gin.Context) {
	actingID := userIDFromCtx(c)
	communityID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.DeleteCommunity(c.Request.Context(), actingID, communityID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

type interestsReq struct {
	Interests []string `json:"interests" binding:"required"`
}

func (h *MembershipHandler) UpdateInterests(c *gin.Context) {
	userID := userIDFromCtx(c)

	var req interestsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	normalized, err := h.svc.UpdateUserInterests(c.Request.Context(), userID, req.Interests)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interests": normalized})
}
