package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hiteshchoudhary/chai-backend-sub000/database"
	"github.com/hiteshchoudhary/chai-backend-sub000/helpers"
)

// Healthcheck answers OK when the process is up and the store answers
// a ping.
func Healthcheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := database.Client.Ping(ctx, nil); err != nil {
			helpers.RespondError(c, helpers.NewApiError(http.StatusServiceUnavailable, "database unreachable"))
			return
		}

		helpers.RespondJSON(c, http.StatusOK, gin.H{"status": "ok"}, "everything is fine")
	}
}
