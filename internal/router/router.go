package router

import (
	"github.com/blues/cls/internal/config"
	"github.com/blues/cls/internal/handler"
	"github.com/blues/cls/internal/logic"
	"github.com/blues/cls/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, ownership logic.OwnershipQuery, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "campaign-ledger-service",
		})
	})

	// 指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.Auth([]byte(cfg.Auth.JwtSecret))

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 活动相关路由
		campaignHandler := handler.NewCampaignHandler(db, cfg.Ledger)
		contributionHandler := handler.NewContributionHandler(db, cfg.Ledger)
		campaigns := v1.Group("/campaigns")
		{
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.GET("/:id/leaderboard", campaignHandler.GetLeaderboard)
			campaigns.GET("/:id/contributions", contributionHandler.GetCampaignContributions)
			campaigns.GET("/:id/stats", contributionHandler.GetContributionStats)

			campaigns.POST("", auth, campaignHandler.CreateCampaign)
			campaigns.PATCH("/:id", auth, campaignHandler.UpdateCampaign)
			campaigns.PATCH("/:id/options", auth, campaignHandler.ReplaceOptions)
			campaigns.PATCH("/:id/status", auth, campaignHandler.ToggleStatus)
			campaigns.DELETE("/:id", auth, campaignHandler.DeleteCampaign)
			campaigns.POST("/:id/vote", auth, contributionHandler.Vote)
		}

		// 贡献者维度的查询
		v1.GET("/contributions/user/:userId", contributionHandler.GetContributorContributions)

		// 奖励相关路由
		rewardHandler := handler.NewRewardHandler(db, ownership, cfg.Chain)
		rewards := v1.Group("/nft-rewards")
		{
			rewards.GET("", rewardHandler.GetRewards)
			rewards.GET("/:id", rewardHandler.GetReward)
			rewards.GET("/user/:userId", rewardHandler.GetUserRewards)

			rewards.POST("", auth, rewardHandler.IssueReward)
			rewards.PATCH("/:id", auth, rewardHandler.UpdateReward)
			rewards.DELETE("/:id", auth, rewardHandler.DeleteReward)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
