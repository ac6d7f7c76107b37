package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/hiteshchoudhary/chai-backend-sub000/controllers"
	"github.com/hiteshchoudhary/chai-backend-sub000/database"
	"github.com/hiteshchoudhary/chai-backend-sub000/helpers"
	"github.com/hiteshchoudhary/chai-backend-sub000/routes"
)

func main() {
	log.Println("🔍 [main] Starting application...")

	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️ [main] No .env file found, relying on process environment")
	}

	database.InitDB()
	database.EnsureIndexes(database.Client)
	helpers.InitMediaStorage()
	helpers.InitTokenHelper()

	controllers.InitUserController()
	controllers.InitVideoController()
	controllers.InitCommentController()
	controllers.InitLikeController()
	controllers.InitPlaylistController()
	controllers.InitSubscriptionController()
	controllers.InitTweetController()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:5173"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(corsOrigin, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.HealthcheckRoute(router)
	routes.UserRoute(router)
	routes.VideoRoute(router)
	routes.CommentRoute(router)
	routes.LikeRoute(router)
	routes.PlaylistRoute(router)
	routes.SubscriptionRoute(router)
	routes.TweetRoute(router)
	routes.DashboardRoute(router)

	log.Println("🚀 [main] Server running on port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("❌ [main] Server exited: %v", err)
	}
}
