package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/hiteshchoudhary/chai-backend-sub000/controllers"
	"github.com/hiteshchoudhary/chai-backend-sub000/middleware"
)

func TweetRoute(router *gin.Engine) {
	tweetGroup := router.Group("/api/v1/tweets")

	// 🌍 PUBLIC ROUTES
	tweetGroup.GET("/user/:userId", middleware.OptionalAuthentication(), controller.GetUserTweets())

	// 🔐 PROTECTED ROUTES
	secured := tweetGroup.Group("")
	secured.Use(middleware.Authentication())
	{
		secured.POST("", controller.CreateTweet())
		secured.PATCH("/:tweetId", controller.UpdateTweet())
		secured.DELETE("/:tweetId", controller.DeleteTweet())
	}
}
