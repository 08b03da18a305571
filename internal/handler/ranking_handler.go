package handler

import (
	"net/http"
	"strconv"

	"communehub/internal/service"

	"github.com/gin-gonic/gin"
)

type RankingHandler struct {
	ranking     *service.RankingService
	suggestions *service.SuggestionService
}

func NewRankingHandler(ranking *service.RankingService, suggestions *service.SuggestionService) *RankingHandler {
	return &RankingHandler{ranking: ranking, suggestions: suggestions}
}

// TrendingPosts serves the trending feed. With an authenticated viewer the
// scores carry the personalization boosts; anonymous requests rank
// public+free posts only.
func (h *RankingHandler) TrendingPosts(c *gin.Context) {
	communityID, _ := strconv.ParseUint(c.Query("community_id"), 10, 64)
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	viewerID := userIDFromCtx(c)

	result, err := h.ranking.RankPosts(c.Request.Context(), communityID, viewerID, page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      result.Items,
		"pagination": result.Pagination,
	})
}

// SuggestedCommunities serves personalized community suggestions; requires
// an authenticated viewer.
func (h *RankingHandler) SuggestedCommunities(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	viewerID := userIDFromCtx(c)

	result, err := h.suggestions.SuggestCommunities(c.Request.Context(), viewerID, page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      result.Items,
		"pagination": result.Pagination,
	})
}
