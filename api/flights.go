package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skywings/skybooking/internal/domain"
	"github.com/skywings/skybooking/internal/service/flights"
	"github.com/skywings/skybooking/internal/timeutil"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightResponse struct {
	ID              int64  `json:"id"`
	Airline         string `json:"airline"`
	FlightNumber    string `json:"flight_number"`
	Origin          string `json:"origin"`
	OriginCode      string `json:"origin_code"`
	Destination     string `json:"destination"`
	DestinationCode string `json:"destination_code"`
	DepartureTime   string `json:"departure_time"`
	ArrivalTime     string `json:"arrival_time"`
	Duration        string `json:"duration"`
	PriceCents      int64  `json:"price_cents"`
	Aircraft        string `json:"aircraft"`
	Status          string `json:"status"`
	DelayMinutes    int    `json:"delay_minutes"`
	Gate            string `json:"gate,omitempty"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.search)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) search(c *gin.Context) {
	list, err := h.service.Search(c.Request.Context(), c.Query("origin"), c.Query("destination"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]flightResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toFlightResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func toFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		ID:              f.ID,
		Airline:         f.Airline,
		FlightNumber:    f.FlightNumber,
		Origin:          f.Origin,
		OriginCode:      f.OriginCode,
		Destination:     f.Destination,
		DestinationCode: f.DestinationCode,
		DepartureTime:   f.DepartureTime.Format(time.RFC3339),
		ArrivalTime:     f.ArrivalTime.Format(time.RFC3339),
		Duration:        timeutil.FormatDuration(f.DepartureTime, f.ArrivalTime),
		PriceCents:      f.PriceCents,
		Aircraft:        f.Aircraft,
		Status:          string(f.Status),
		DelayMinutes:    f.DelayMinutes,
		Gate:            f.CurrentGate(),
	}
}
