package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/hiteshchoudhary/chai-backend-sub000/controllers"
	"github.com/hiteshchoudhary/chai-backend-sub000/middleware"
)

func DashboardRoute(router *gin.Engine) {
	// 🔐 PROTECTED ROUTES
	dashboardGroup := router.Group("/api/v1/dashboard")
	dashboardGroup.Use(middleware.Authentication())
	{
		dashboardGroup.GET("/stats", controller.GetChannelStats())
		dashboardGroup.GET("/videos", controller.GetChannelVideos())
	}
}
