package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skywings/skybooking/internal/domain"
	"github.com/skywings/skybooking/internal/service/booking"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) HoldSeat(ctx context.Context, input booking.HoldSeatInput) (*domain.BookingDraft, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDraft), args.Error(1)
}

func (m *MockBookingUseCase) SubmitPassenger(ctx context.Context, draftID string, passenger domain.Passenger) (*domain.BookingDraft, error) {
	args := m.Called(ctx, draftID, passenger)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDraft), args.Error(1)
}

func (m *MockBookingUseCase) Confirm(ctx context.Context, draftID string) (*domain.Booking, error) {
	args := m.Called(ctx, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Abandon(ctx context.Context, draftID string) error {
	args := m.Called(ctx, draftID)
	return args.Error(0)
}

func (m *MockBookingUseCase) Transition(ctx context.Context, code string, target domain.LifecycleState) (*domain.Booking, error) {
	args := m.Called(ctx, code, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, code string) (*domain.Booking, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func TestBookingHandler_holdSeat(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(holdSeatRequest{FlightID: 1, Seat: "14A"})
	c.Request = httptest.NewRequest("POST", "/bookings/holds", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	draft := &domain.BookingDraft{
		ID:        "d1",
		State:     domain.StateSeatHeld,
		FlightID:  1,
		Seat:      "14A",
		HoldToken: "tok",
		ExpiresAt: time.Now().Add(time.Minute),
	}
	mockService.On("HoldSeat", c.Request.Context(), booking.HoldSeatInput{FlightID: 1, Seat: "14A"}).
		Return(draft, nil)

	handler.holdSeat(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response draftResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "d1", response.ID)
	assert.Equal(t, string(domain.StateSeatHeld), response.State)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_holdSeat_Unavailable(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(holdSeatRequest{FlightID: 1, Seat: "14A"})
	c.Request = httptest.NewRequest("POST", "/bookings/holds", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("HoldSeat", c.Request.Context(), mock.Anything).Return(nil, domain.ErrSeatUnavailable)

	handler.holdSeat(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_confirm(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "d1"}}
	c.Request = httptest.NewRequest("POST", "/bookings/holds/d1/confirm", nil)

	booked := &domain.Booking{
		TrackingCode: "SWAB1234",
		FlightID:     1,
		Passenger:    domain.Passenger{FirstName: "John", LastName: "Smith", Email: "john@example.com", Phone: "+1"},
		Seat:         "14A",
		Gate:         "B22",
		BoardingTime: "07:30",
		PriceCents:   64900,
		Status:       domain.StateConfirmed,
	}
	mockService.On("Confirm", c.Request.Context(), "d1").Return(booked, nil)

	handler.confirm(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "SWAB1234", response.TrackingCode)
	assert.Equal(t, "07:30", response.BoardingTime)
	assert.Equal(t, string(domain.StateConfirmed), response.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_confirm_HoldExpired(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "d1"}}
	c.Request = httptest.NewRequest("POST", "/bookings/holds/d1/confirm", nil)

	mockService.On("Confirm", c.Request.Context(), "d1").Return(nil, domain.ErrHoldExpired)

	handler.confirm(c)

	assert.Equal(t, http.StatusGone, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_transition_Invalid(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(transitionRequest{Status: "checked-in"})
	c.Params = gin.Params{{Key: "code", Value: "SWAB1234"}}
	c.Request = httptest.NewRequest("POST", "/bookings/SWAB1234/status", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Transition", c.Request.Context(), "SWAB1234", domain.StateCheckedIn).
		Return(nil, domain.ErrInvalidTransition)

	handler.transition(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "code", Value: "SWAB1234"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/SWAB1234", nil)

	cancelled := &domain.Booking{TrackingCode: "SWAB1234", Status: domain.StateCancelled}
	mockService.On("Cancel", c.Request.Context(), "SWAB1234").Return(cancelled, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response bookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, string(domain.StateCancelled), response.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_listByEmail_RequiresEmail(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/bookings", nil)

	handler.listByEmail(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "ListByEmail")
}
