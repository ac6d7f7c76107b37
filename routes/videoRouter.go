package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/hiteshchoudhary/chai-backend-sub000/controllers"
	"github.com/hiteshchoudhary/chai-backend-sub000/middleware"
)

func VideoRoute(router *gin.Engine) {
	videoGroup := router.Group("/api/v1/videos")

	// 🌍 PUBLIC ROUTES (optional auth so owners see their private rows)
	videoGroup.GET("", middleware.OptionalAuthentication(), controller.GetAllVideos())
	videoGroup.GET("/:videoId", middleware.OptionalAuthentication(), controller.GetVideoByID())

	// 🔐 PROTECTED ROUTES
	secured := videoGroup.Group("")
	secured.Use(middleware.Authentication())
	{
		secured.POST("", controller.PublishVideo())
		secured.PATCH("/:videoId", controller.UpdateVideo())
		secured.DELETE("/:videoId", controller.DeleteVideo())
		secured.PATCH("/toggle/publish/:videoId", controller.TogglePublishStatus())
	}
}
