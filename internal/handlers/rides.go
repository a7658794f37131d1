package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/delride/delride-backend/internal/models"
	"github.com/delride/delride-backend/internal/rides"
	"github.com/delride/delride-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// CreateRide handles the creation of a new ride order by a rider
func CreateRide(svc *rides.RideService, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input rides.CreateRideInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		ride, err := svc.Create(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}

		notifyRideUpdate(c, hub, ride)
		c.JSON(201, ride)
	}
}

// ListRides retrieves a page of rides, newest first, optionally filtered
// by status
func ListRides(svc *rides.RideService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
		status := c.Query("status")

		list, total, err := svc.List(c.Request.Context(), status, page, perPage)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, gin.H{
			"rides":    list,
			"total":    total,
			"page":     page,
			"per_page": perPage,
		})
	}
}

// GetRide retrieves a single ride with rider and driver details
func GetRide(svc *rides.RideService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := rideID(c)
		if !ok {
			return
		}

		ride, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, ride)
	}
}

// UpdateRide edits the mutable fields of a pending ride
func UpdateRide(svc *rides.RideService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := rideID(c)
		if !ok {
			return
		}

		var input rides.UpdateRideInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		ride, err := svc.Modify(c.Request.Context(), id, input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, ride)
	}
}

// DeleteRide removes a ride that has not been picked up yet
func DeleteRide(svc *rides.RideService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := rideID(c)
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(200, gin.H{"message": "Ride successfully deleted"})
	}
}

// AcceptRide assigns a driver to a pending ride; at most one concurrent
// claim wins
func AcceptRide(svc *rides.RideService, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := rideID(c)
		if !ok {
			return
		}

		var input struct {
			DriverID uint `json:"driver_id"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		ride, err := svc.Accept(c.Request.Context(), id, input.DriverID)
		if err != nil {
			respondError(c, err)
			return
		}

		notifyRideUpdate(c, hub, ride)
		c.JSON(200, ride)
	}
}

// CompleteRide finishes an accepted ride
func CompleteRide(svc *rides.RideService, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := rideID(c)
		if !ok {
			return
		}

		ride, err := svc.Complete(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		notifyRideUpdate(c, hub, ride)
		c.JSON(200, ride)
	}
}

// CancelRide cancels a ride that has not been completed yet
func CancelRide(svc *rides.RideService, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := rideID(c)
		if !ok {
			return
		}

		ride, err := svc.Cancel(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		notifyRideUpdate(c, hub, ride)
		c.JSON(200, ride)
	}
}

// rideID parses the :id path parameter, responding 400 on garbage.
func rideID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(400, gin.H{"error": "Invalid ride ID"})
		return 0, false
	}
	return uint(id), true
}

// respondError maps each domain error kind to its stable HTTP signal.
func respondError(c *gin.Context, err error) {
	var ve *rides.ValidationError
	var sc *rides.StateConflictError

	switch {
	case errors.Is(err, rides.ErrRideNotFound):
		c.JSON(404, gin.H{"error": "Ride not found"})
	case errors.As(err, &ve):
		c.JSON(400, gin.H{"error": "Validation failed", "errors": ve.Fields})
	case errors.As(err, &sc):
		c.JSON(409, gin.H{
			"error":     sc.Error(),
			"operation": sc.Op,
			"status":    sc.Status,
		})
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(500, gin.H{"error": "Internal server error"})
	}
}

// notifyRideUpdate fans a committed status change out to Redis and to the
// rider and driver over WebSocket. Failures are logged, never surfaced;
// the transition is already durable.
func notifyRideUpdate(c *gin.Context, hub *services.Hub, ride *models.Ride) {
	data := map[string]interface{}{"user_id": ride.RiderID}
	if ride.DriverID != nil {
		data["driver_id"] = *ride.DriverID
	}
	if err := services.PublishRideUpdate(c.Request.Context(), ride.ID, string(ride.Status), data); err != nil {
		log.Printf("Failed to publish ride update: %v", err)
	}

	update := services.RideStatusUpdate{
		RideID:   ride.ID,
		Status:   string(ride.Status),
		DriverID: ride.DriverID,
	}
	hub.SendRideStatusUpdate(ride.RiderID, update)
	if ride.DriverID != nil {
		hub.SendRideStatusUpdate(*ride.DriverID, update)
	}
}
