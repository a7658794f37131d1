package handlers

import (
	"time"

	"github.com/delride/delride-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthCheck reports service liveness and the state of its dependencies
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		code := 200
		checks := gin.H{}

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			status = "unhealthy"
			code = 503
			checks["database"] = "down"
		} else {
			checks["database"] = "up"
		}

		if services.RedisClient != nil {
			if err := services.RedisClient.Ping(c.Request.Context()).Err(); err != nil {
				status = "unhealthy"
				code = 503
				checks["redis"] = "down"
			} else {
				checks["redis"] = "up"
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"checks":    checks,
		})
	}
}
