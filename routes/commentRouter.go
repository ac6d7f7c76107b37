package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/hiteshchoudhary/chai-backend-sub000/controllers"
	"github.com/hiteshchoudhary/chai-backend-sub000/middleware"
)

func CommentRoute(router *gin.Engine) {
	commentGroup := router.Group("/api/v1/comments")

	// 🌍 PUBLIC ROUTES
	commentGroup.GET("/:videoId", middleware.OptionalAuthentication(), controller.GetVideoComments())
	commentGroup.GET("/tweet/:tweetId", middleware.OptionalAuthentication(), controller.GetTweetComments())

	// 🔐 PROTECTED ROUTES
	secured := commentGroup.Group("")
	secured.Use(middleware.Authentication())
	{
		secured.POST("/:videoId", controller.AddVideoComment())
		secured.POST("/tweet/:tweetId", controller.AddTweetComment())
		secured.PATCH("/c/:commentId", controller.UpdateComment())
		secured.DELETE("/c/:commentId", controller.DeleteComment())
	}
}
