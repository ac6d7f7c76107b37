package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/hiteshchoudhary/chai-backend-sub000/controllers"
	"github.com/hiteshchoudhary/chai-backend-sub000/middleware"
)

func PlaylistRoute(router *gin.Engine) {
	playlistGroup := router.Group("/api/v1/playlists")

	// 🌍 PUBLIC ROUTES (optional auth so owners see private playlists)
	playlistGroup.GET("/:playlistId", middleware.OptionalAuthentication(), controller.GetPlaylistByID())
	playlistGroup.GET("/user/:userId", middleware.OptionalAuthentication(), controller.GetUserPlaylists())

	// 🔐 PROTECTED ROUTES
	secured := playlistGroup.Group("")
	secured.Use(middleware.Authentication())
	{
		secured.POST("", controller.CreatePlaylist())
		secured.PATCH("/:playlistId", controller.UpdatePlaylist())
		secured.DELETE("/:playlistId", controller.DeletePlaylist())
		secured.PATCH("/add/:videoId/:playlistId", controller.AddVideoToPlaylist())
		secured.PATCH("/remove/:videoId/:playlistId", controller.RemoveVideoFromPlaylist())
	}
}
