package router

import (
	"communehub/internal/handler"
	"communehub/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Ranking    *handler.RankingHandler
	Membership *handler.MembershipHandler
	Engagement *handler.EngagementHandler
}

func InitRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// 排行/推荐接口：匿名可看全站热门，登录后带个性化
	feedGroup := r.Group("/api/feed")
	feedGroup.Use(middleware.OptionalAuth())
	{
		feedGroup.GET("/trending", h.Ranking.TrendingPosts)
	}

	suggestGroup := r.Group("/api/suggestions")
	suggestGroup.Use(middleware.AuthMiddleware())
	{
		suggestGroup.GET("/communities", h.Ranking.SuggestedCommunities)
	}

	// 社区成员关系接口
	communityGroup := r.Group("/api/community")
	communityGroup.Use(middleware.AuthMiddleware())
	{
		communityGroup.POST("", h.Membership.CreateCommunity)
		communityGroup.POST("/:id/post", h.Engagement.CreatePost)
		communityGroup.POST("/:id/join", h.Membership.Join)
		communityGroup.PUT("/:id/role", h.Membership.UpdateRole)
		communityGroup.PUT("/:id/status", h.Membership.UpdateStatus)
		communityGroup.POST("/:id/points", h.Membership.AddPoints)
		communityGroup.PUT("/:id/subscription", h.Membership.UpdateSubscription)
		communityGroup.GET("/:id/leaderboard", h.Membership.Leaderboard)
		communityGroup.DELETE("/:id", h.Membership.DeleteCommunity)
	}

	// 用户兴趣接口
	userGroup := r.Group("/api/user")
	userGroup.Use(middleware.AuthMiddleware())
	{
		userGroup.PUT("/interests", h.Membership.UpdateInterests)
	}

	// 帖子互动接口
	postGroup := r.Group("/api/post")
	postGroup.Use(middleware.AuthMiddleware())
	{
		postGroup.POST("/:id/like", h.Engagement.ToggleLike)
		postGroup.POST("/:id/comment", h.Engagement.Comment)
		postGroup.POST("/:id/share", h.Engagement.Share)
		postGroup.POST("/:id/view", h.Engagement.View)
	}

	return r
}
