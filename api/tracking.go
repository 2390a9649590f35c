package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skywings/skybooking/internal/service/tracker"
)

type TrackingHandler struct {
	service tracker.StatusTracker
}

type trackingResponse struct {
	Booking      bookingResponse `json:"booking"`
	FlightNumber string          `json:"flight_number"`
	FlightStatus string          `json:"flight_status"`
	DelayMinutes int             `json:"delay_minutes"`
	HasDelay     bool            `json:"has_delay"`
	Gate         string          `json:"gate"`
	GateChanged  bool            `json:"gate_changed"`
}

func NewTrackingHandler(service tracker.StatusTracker) *TrackingHandler {
	return &TrackingHandler{service: service}
}

func (h *TrackingHandler) Register(router *gin.RouterGroup) {
	router.GET("/track/:code", h.track)
}

func (h *TrackingHandler) track(c *gin.Context) {
	snapshot, err := h.service.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, trackingResponse{
		Booking:      toBookingResponse(&snapshot.Booking),
		FlightNumber: snapshot.Flight.FlightNumber,
		FlightStatus: string(snapshot.FlightStatus),
		DelayMinutes: snapshot.DelayMinutes,
		HasDelay:     snapshot.HasDelay,
		Gate:         snapshot.Gate,
		GateChanged:  snapshot.GateChanged,
	})
}
