package handler

import (
	"errors"
	"net/http"

	"github.com/Baaaki/ride-server/internal/models"
	"github.com/Baaaki/ride-server/internal/service"
	"github.com/Baaaki/ride-server/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RideHandler struct {
	rideService *service.RideService
	viewService *service.RideViewService
}

func NewRideHandler(rideService *service.RideService, viewService *service.RideViewService) *RideHandler {
	return &RideHandler{
		rideService: rideService,
		viewService: viewService,
	}
}

type RequestRideRequest struct {
	PickupLocation  string `json:"pickup_location" binding:"required"`
	DropoffLocation string `json:"dropoff_location" binding:"required"`
	RideType        string `json:"ride_type" binding:"required"`
}

type UpdateStatusRequest struct {
	RideID   string `json:"ride_id" binding:"required"`
	Status   string `json:"status" binding:"required"`
	DriverID string `json:"driver_id"`
}

type DeleteRideRequest struct {
	RideID string `json:"ride_id" binding:"required"`
}

// RequestRide creates a ride for the authenticated user.
// POST /api/ride/request
func (h *RideHandler) RequestRide(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req RequestRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	ride, err := h.rideService.RequestRide(userID, req.PickupLocation, req.DropoffLocation, models.RideType(req.RideType))
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ride requested successfully",
		"ride":    ride,
	})
}

// UpdateStatus moves a ride through its lifecycle on behalf of the
// authenticated user.
// POST /api/ride/updateStatus
func (h *RideHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	rideID, err := uuid.Parse(req.RideID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ride id",
		})
		return
	}

	var driverID *uuid.UUID
	if req.DriverID != "" {
		id, err := uuid.Parse(req.DriverID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid driver id",
			})
			return
		}
		driverID = &id
	}

	ride, err := h.rideService.UpdateStatus(rideID, models.RideStatus(req.Status), userID, driverID)
	if err != nil {
		logger.Log.Warn("Ride status update failed",
			zap.String("ride_id", req.RideID),
			zap.String("target_status", req.Status),
			zap.Error(err),
		)
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ride status updated successfully",
		"ride":    ride,
	})
}

// Latest returns the authenticated user's most recent ride, or an empty
// marker when they have none.
// GET /api/ride/latest
func (h *RideHandler) Latest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := h.viewService.LatestRideFor(userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}
	if view == nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "No rides found for this user",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Latest ride retrieved successfully",
		"ride":    view,
	})
}

// PassengerHistory returns the authenticated passenger's rides.
// GET /api/ride/passengerHistory
func (h *RideHandler) PassengerHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	views, err := h.viewService.PassengerHistory(userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Passenger ride history retrieved successfully",
		"rides":   views,
	})
}

// DriverHistory returns the authenticated driver's assigned rides.
// GET /api/ride/driverHistory
func (h *RideHandler) DriverHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	views, err := h.viewService.DriverHistory(userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Driver ride history retrieved successfully",
		"rides":   views,
	})
}

// AvailableRides returns the broadcast feed of requested rides.
// GET /api/ride/driverAvailable
func (h *RideHandler) AvailableRides(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	views, err := h.viewService.AvailableRides(userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Available rides retrieved successfully",
		"rides":   views,
	})
}

// GetByID returns a single ride.
// GET /api/ride/getById?rideId=...
func (h *RideHandler) GetByID(c *gin.Context) {
	rideID, err := uuid.Parse(c.Query("rideId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ride id",
		})
		return
	}

	ride, err := h.rideService.GetRideByID(rideID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ride retrieved successfully",
		"ride":    ride,
	})
}

// Delete permanently removes a ride on behalf of the authenticated user.
// DELETE /api/ride/delete
func (h *RideHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req DeleteRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	rideID, err := uuid.Parse(req.RideID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ride id",
		})
		return
	}

	if err := h.rideService.DeleteRide(rideID, userID); err != nil {
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ride deleted successfully",
	})
}

// statusForError maps service errors onto HTTP status codes:
// missing records to 404, bad input to 400, authorization failures to 403,
// terminal/raced rides to 409, anything unexpected to an opaque 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRideNotFound),
		errors.Is(err, service.ErrDriverNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidRideType),
		errors.Is(err, service.ErrInvalidRideStatus),
		errors.Is(err, service.ErrDriverIDRequired),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrNotADriverAccount):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotRideParticipant),
		errors.Is(err, service.ErrDriverRoleRequired):
		return http.StatusForbidden
	case errors.Is(err, service.ErrRideClosed),
		errors.Is(err, service.ErrConcurrentUpdate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
