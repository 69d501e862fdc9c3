// README: Ride handlers for aggregate fares, single-provider estimates,
// and booking passthrough.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"faredeck/internal/aggregate"
	"faredeck/internal/provider"
	"faredeck/internal/types"
)

type RideHandler struct {
	agg      *aggregate.Service
	registry *provider.Registry
}

func NewRideHandler(agg *aggregate.Service, registry *provider.Registry) *RideHandler {
	return &RideHandler{agg: agg, registry: registry}
}

// Aggregate handles GET /api/rides?pickup=&destination=.
func (h *RideHandler) Aggregate(c *gin.Context) {
	resp, err := h.agg.Aggregate(c.Request.Context(), c.Query("pickup"), c.Query("destination"), h.registry.All())
	if err != nil {
		writeRideError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Estimate handles GET /api/rides/:provider/fare.
func (h *RideHandler) Estimate(c *gin.Context) {
	p, err := h.registry.Get(c.Param("provider"))
	if err != nil {
		writeRideError(c, err)
		return
	}
	resp, err := h.agg.Aggregate(c.Request.Context(), c.Query("pickup"), c.Query("destination"), []provider.FareEstimator{p})
	if err != nil {
		writeRideError(c, err)
		return
	}
	if len(resp.Quotes) == 0 {
		writeRideError(c, provider.ErrUnavailable)
		return
	}
	c.JSON(http.StatusOK, resp.Quotes[0])
}

type bookRideReq struct {
	PickupLat    float64 `json:"pickup_lat"`
	PickupLng    float64 `json:"pickup_lng"`
	DropLat      float64 `json:"drop_lat"`
	DropLng      float64 `json:"drop_lng"`
	VehicleClass string  `json:"vehicle_class"`
}

// Book handles POST /api/rides/:provider/book.
func (h *RideHandler) Book(c *gin.Context) {
	booker, ok := h.booker(c)
	if !ok {
		return
	}
	var req bookRideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	booking, err := booker.BookRide(c.Request.Context(), provider.BookingRequest{
		Pickup:       types.Point{Lat: req.PickupLat, Lng: req.PickupLng},
		Drop:         types.Point{Lat: req.DropLat, Lng: req.DropLng},
		VehicleClass: req.VehicleClass,
	})
	if err != nil {
		writeRideError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Status handles GET /api/rides/:provider/status/:id.
func (h *RideHandler) Status(c *gin.Context) {
	booker, ok := h.booker(c)
	if !ok {
		return
	}
	state, err := booker.RideStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRideError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Cancel handles DELETE /api/rides/:provider/cancel/:id.
func (h *RideHandler) Cancel(c *gin.Context) {
	booker, ok := h.booker(c)
	if !ok {
		return
	}
	result, err := booker.CancelRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeRideError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// booker resolves the :provider param to an adapter with the booking
// capability, writing the error response itself when it cannot.
func (h *RideHandler) booker(c *gin.Context) (provider.Booker, bool) {
	p, err := h.registry.Get(c.Param("provider"))
	if err != nil {
		writeRideError(c, err)
		return nil, false
	}
	booker, ok := p.(provider.Booker)
	if !ok {
		writeError(c, http.StatusNotFound, "provider does not support booking")
		return nil, false
	}
	return booker, true
}
