package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/hiteshchoudhary/chai-backend-sub000/controllers"
	"github.com/hiteshchoudhary/chai-backend-sub000/middleware"
)

func UserRoute(router *gin.Engine) {
	userGroup := router.Group("/api/v1/users")

	// 🌍 PUBLIC ROUTES
	userGroup.POST("/register", controller.RegisterUser())
	userGroup.POST("/login", controller.LoginUser())
	userGroup.POST("/refresh-token", controller.RefreshAccessToken())

	// 🔐 PROTECTED ROUTES
	secured := userGroup.Group("")
	secured.Use(middleware.Authentication())
	{
		secured.POST("/logout", controller.LogoutUser())
		secured.POST("/change-password", controller.ChangeCurrentPassword())
		secured.GET("/current-user", controller.GetCurrentUser())
		secured.PATCH("/update-account", controller.UpdateAccountDetails())
		secured.PATCH("/avatar", controller.UpdateUserAvatar())
		secured.PATCH("/cover-image", controller.UpdateUserCoverImage())
		secured.GET("/c/:username", controller.GetUserChannelProfile())
		secured.GET("/history", controller.GetWatchHistory())
	}
}
