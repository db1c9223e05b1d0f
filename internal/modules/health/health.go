package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var processStart = time.Now()

// RegisterRoutes mounts the liveness endpoint.
func RegisterRoutes(r gin.IRouter, db *gorm.DB) {
	r.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		dbState := "up"

		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status = http.StatusServiceUnavailable
			dbState = "down"
		}

		c.JSON(status, gin.H{
			"status":    dbState,
			"uptime_ms": time.Since(processStart).Milliseconds(),
		})
	})
}
