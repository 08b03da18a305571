package handler

import (
	"net/http"
	"strconv"

	"communehub/internal/service"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	svc *service.EngagementService
}

func NewEngagementHandler(svc *service.EngagementService) *EngagementHandler {
	return &EngagementHandler{svc: svc}
}

type createPostReq struct {
	Content string `json:"content" binding:"required"`
}

// CreatePost publishes a post into the community; active members only.
func (h *EngagementHandler) CreatePost(c *gin.Context) {
	userID := userIDFromCtx(c)
	communityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || communityID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid community id"})
		return
	}

	var req createPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), userID, communityID, req.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

type likeReq struct {
	Action string `json:"action" binding:"required,oneof=like unlike"`
}

// ToggleLike likes or unlikes a post for the authenticated user.
func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	userID := userIDFromCtx(c)
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	var req likeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	var changed bool
	if req.Action == "like" {
		changed, err = h.svc.Like(c.Request.Context(), userID, postID)
	} else {
		changed, err = h.svc.Unlike(c.Request.Context(), userID, postID)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

type commentReq struct {
	Content string `json:"content" binding:"required"`
}

func (h *EngagementHandler) Comment(c *gin.Context) {
	userID := userIDFromCtx(c)
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var req commentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	comment, err := h.svc.Comment(c.Request.Context(), userID, postID, req.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": comment.ID, "content": comment.Content, "createdAt": comment.CreatedAt})
}

func (h *EngagementHandler) Share(c *gin.Context) {
	userID := userIDFromCtx(c)
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.Share(c.Request.Context(), userID, postID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "shared"})
}

func (h *EngagementHandler) View(c *gin.Context) {
	userID := userIDFromCtx(c)
	postID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.View(c.Request.Context(), userID, postID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
