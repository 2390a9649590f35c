package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skywings/skybooking/internal/domain"
	"github.com/skywings/skybooking/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type holdSeatRequest struct {
	FlightID int64  `json:"flight_id"`
	Seat     string `json:"seat"`
}

type passengerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Passport  string `json:"passport"`
}

type transitionRequest struct {
	Status string `json:"status"`
}

type draftResponse struct {
	ID        string `json:"id"`
	State     string `json:"state"`
	FlightID  int64  `json:"flight_id"`
	Seat      string `json:"seat"`
	ExpiresAt string `json:"expires_at"`
}

type bookingResponse struct {
	TrackingCode string `json:"tracking_code"`
	FlightID     int64  `json:"flight_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Seat         string `json:"seat"`
	Gate         string `json:"gate"`
	BoardingTime string `json:"boarding_time"`
	PriceCents   int64  `json:"price_cents"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/holds", h.holdSeat)
	router.PUT("/holds/:id/passenger", h.submitPassenger)
	router.POST("/holds/:id/confirm", h.confirm)
	router.DELETE("/holds/:id", h.abandon)
	router.GET("/", h.listByEmail)
	router.POST("/:code/status", h.transition)
	router.DELETE("/:code", h.cancel)
}

func (h *BookingHandler) holdSeat(c *gin.Context) {
	var req holdSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.service.HoldSeat(c.Request.Context(), booking.HoldSeatInput{
		FlightID: req.FlightID,
		Seat:     req.Seat,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDraftResponse(draft))
}

func (h *BookingHandler) submitPassenger(c *gin.Context) {
	var req passengerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := h.service.SubmitPassenger(c.Request.Context(), c.Param("id"), domain.Passenger{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Passport:  req.Passport,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDraftResponse(draft))
}

func (h *BookingHandler) confirm(c *gin.Context) {
	booked, err := h.service.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(booked))
}

func (h *BookingHandler) abandon(c *gin.Context) {
	if err := h.service.Abandon(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) listByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	list, err := h.service.ListByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toBookingResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) transition(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Transition(c.Request.Context(), c.Param("code"), domain.LifecycleState(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	cancelled, err := h.service.Cancel(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(cancelled))
}

func toDraftResponse(d *domain.BookingDraft) draftResponse {
	return draftResponse{
		ID:        d.ID,
		State:     string(d.State),
		FlightID:  d.FlightID,
		Seat:      d.Seat,
		ExpiresAt: d.ExpiresAt.Format(time.RFC3339),
	}
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		TrackingCode: b.TrackingCode,
		FlightID:     b.FlightID,
		FirstName:    b.Passenger.FirstName,
		LastName:     b.Passenger.LastName,
		Email:        b.Passenger.Email,
		Phone:        b.Passenger.Phone,
		Seat:         b.Seat,
		Gate:         b.Gate,
		BoardingTime: b.BoardingTime,
		PriceCents:   b.PriceCents,
		Status:       string(b.Status),
		CreatedAt:    b.CreatedAt.Format(time.RFC3339),
	}
}
