package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rides/internal/domain"
	"rides/internal/middleware"
	"rides/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// CreateRideRequest is the HTTP request body for requesting a ride.
type CreateRideRequest struct {
	PickupAddress  string `json:"pickup_address"`
	DropoffAddress string `json:"dropoff_address"`
}

// UpdateStatusRequest is the HTTP request body for advancing a ride.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// LocationResponse is the wire form of a geocoded point.
type LocationResponse struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RideResponse is the wire form of a ride.
type RideResponse struct {
	ID           string           `json:"id"`
	RiderID      string           `json:"rider_id"`
	DriverID     string           `json:"driver_id,omitempty"`
	Pickup       LocationResponse `json:"pickup"`
	Dropoff      LocationResponse `json:"dropoff"`
	Status       string           `json:"status"`
	Fare         float64          `json:"fare"`
	RequestedAt  string           `json:"requested_at"`
	CompletedAt  string           `json:"completed_at,omitempty"`
	CancelledAt  string           `json:"cancelled_at,omitempty"`
	CancelReason string           `json:"cancel_reason,omitempty"`
}

func toRideResponse(ride *domain.Ride) RideResponse {
	resp := RideResponse{
		ID:       ride.ID,
		RiderID:  ride.RiderID,
		DriverID: ride.DriverID,
		Pickup: LocationResponse{
			Address:   ride.Pickup.Address,
			Latitude:  ride.Pickup.Lat,
			Longitude: ride.Pickup.Lng,
		},
		Dropoff: LocationResponse{
			Address:   ride.Dropoff.Address,
			Latitude:  ride.Dropoff.Lat,
			Longitude: ride.Dropoff.Lng,
		},
		Status:      string(ride.Status),
		Fare:        ride.Fare,
		RequestedAt: ride.RequestedAt.Format(time.RFC3339),
	}

	if !ride.CompletedAt.IsZero() {
		resp.CompletedAt = ride.CompletedAt.Format(time.RFC3339)
	}
	if !ride.CancelledAt.IsZero() {
		resp.CancelledAt = ride.CancelledAt.Format(time.RFC3339)
		resp.CancelReason = ride.CancelReason
	}

	return resp
}

func toRideListResponse(rides []*domain.Ride) []RideResponse {
	resp := make([]RideResponse, 0, len(rides))
	for _, ride := range rides {
		resp = append(resp, toRideResponse(ride))
	}
	return resp
}

// CreateRide handles POST /v1/rides
func (h *RideHandler) CreateRide(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok || actor.Role != domain.RoleRider {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "only riders may request rides"})
		return
	}

	var req CreateRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	ride, err := h.rideService.CreateRide(c.Request.Context(), service.CreateRideRequest{
		RiderID:        actor.ID,
		PickupAddress:  req.PickupAddress,
		DropoffAddress: req.DropoffAddress,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRideResponse(ride))
}

// GetAvailableRides handles GET /v1/rides/available
func (h *RideHandler) GetAvailableRides(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok || actor.Role != domain.RoleDriver {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "only drivers may browse requested rides"})
		return
	}

	rides, err := h.rideService.ListAvailableRides(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRideListResponse(rides))
}

// AcceptRide handles PUT /v1/rides/:id/accept
func (h *RideHandler) AcceptRide(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok || actor.Role != domain.RoleDriver {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "only drivers may accept rides"})
		return
	}

	ride, err := h.rideService.AcceptRide(c.Request.Context(), c.Param("id"), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRideResponse(ride))
}

// UpdateStatus handles PUT /v1/rides/:id/status
func (h *RideHandler) UpdateStatus(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "identity required"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	ride, err := h.rideService.UpdateStatus(c.Request.Context(), service.UpdateStatusRequest{
		RideID:    c.Param("id"),
		Actor:     actor,
		NewStatus: domain.RideStatus(req.Status),
		Reason:    req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRideResponse(ride))
}

// GetMyRides handles GET /v1/rides/mine
func (h *RideHandler) GetMyRides(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "identity required"})
		return
	}

	var rides []*domain.Ride
	var err error

	switch actor.Role {
	case domain.RoleRider:
		rides, err = h.rideService.ListRidesForRider(c.Request.Context(), actor.ID)
	case domain.RoleDriver:
		rides, err = h.rideService.ListRidesForDriver(c.Request.Context(), actor.ID)
	default:
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "only riders and drivers have ride history"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRideListResponse(rides))
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "identity required"})
		return
	}

	ride, err := h.rideService.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	// Participants see their own rides; admins see everything.
	if actor.Role != domain.RoleAdmin && actor.ID != ride.RiderID && actor.ID != ride.DriverID {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "not a participant of this ride"})
		return
	}

	c.JSON(http.StatusOK, toRideResponse(ride))
}

// GetAllRides handles GET /v1/rides (admin)
func (h *RideHandler) GetAllRides(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok || actor.Role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "admin only"})
		return
	}

	rides, err := h.rideService.ListAllRides(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRideListResponse(rides))
}

// DeleteRide handles DELETE /v1/rides/:id (admin)
func (h *RideHandler) DeleteRide(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok || actor.Role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "admin only"})
		return
	}

	if err := h.rideService.DeleteRide(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
