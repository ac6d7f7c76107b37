package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/hiteshchoudhary/chai-backend-sub000/controllers"
	"github.com/hiteshchoudhary/chai-backend-sub000/middleware"
)

func LikeRoute(router *gin.Engine) {
	// 🔐 PROTECTED ROUTES
	likeGroup := router.Group("/api/v1/likes")
	likeGroup.Use(middleware.Authentication())
	{
		likeGroup.POST("/toggle/v/:videoId", controller.ToggleVideoLike())
		likeGroup.POST("/toggle/c/:commentId", controller.ToggleCommentLike())
		likeGroup.POST("/toggle/t/:tweetId", controller.ToggleTweetLike())
		likeGroup.GET("/videos", controller.GetLikedVideos())
	}
}
