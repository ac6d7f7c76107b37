package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/hiteshchoudhary/chai-backend-sub000/controllers"
	"github.com/hiteshchoudhary/chai-backend-sub000/middleware"
)

func SubscriptionRoute(router *gin.Engine) {
	// 🔐 PROTECTED ROUTES
	subscriptionGroup := router.Group("/api/v1/subscriptions")
	subscriptionGroup.Use(middleware.Authentication())
	{
		subscriptionGroup.POST("/c/:channelId", controller.ToggleSubscription())
		subscriptionGroup.GET("/c/:channelId", controller.GetChannelSubscribers())
		subscriptionGroup.GET("/u/:subscriberId", controller.GetSubscribedChannels())
	}
}
