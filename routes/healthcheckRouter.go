package routes

import (
	"github.com/gin-gonic/gin"

	controller "github.com/hiteshchoudhary/chai-backend-sub000/controllers"
)

func HealthcheckRoute(router *gin.Engine) {
	router.GET("/api/v1/healthcheck", controller.Healthcheck())
}
