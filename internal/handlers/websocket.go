package handlers

import (
	"strconv"

	"github.com/delride/delride-backend/internal/models"
	"github.com/delride/delride-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// WebSocketHandler upgrades the connection and registers the user with
// the hub so they receive live ride status updates.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Query("userId"), 10, 32)
		if err != nil || userID == 0 {
			c.JSON(400, gin.H{"error": "userId query parameter required"})
			return
		}
		userType := c.DefaultQuery("userType", string(models.UserTypeRider))

		services.HandleWebSocket(hub, c.Writer, c.Request, uint(userID), userType)
	}
}
