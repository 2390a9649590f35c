package api

import (
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
	"github.com/skywings/skybooking/internal/kafka"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Search(ctx context.Context, originCode, destinationCode string) ([]domain.Flight, error) {
	args := m.Called(ctx, originCode, destinationCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) ApplyStatusEvent(ctx context.Context, event kafka.FlightStatusEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestFlightHandler_search(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights?origin=JFK&destination=LAX", nil)

	departure := time.Date(2026, 9, 15, 8, 30, 0, 0, time.UTC)
	list := []domain.Flight{{
		ID:              1,
		Airline:         "SkyWings",
		FlightNumber:    "SW101",
		OriginCode:      "JFK",
		DestinationCode: "LAX",
		DepartureTime:   departure,
		ArrivalTime:     departure.Add(5*time.Hour + 45*time.Minute),
		PriceCents:      64900,
		Status:          domain.FlightStatusScheduled,
	}}
	mockService.On("Search", c.Request.Context(), "JFK", "LAX").Return(list, nil)

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []flightResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 1)
	assert.Equal(t, "SW101", response[0].FlightNumber)
	assert.Equal(t, "5h 45m", response[0].Duration)

	mockService.AssertExpectations(t)
}

func TestFlightHandler_get_NotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "42"}}
	c.Request = httptest.NewRequest("GET", "/flights/42", nil)

	mockService.On("GetByID", c.Request.Context(), int64(42)).Return(nil, domain.ErrFlightNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_get_BadID(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Request = httptest.NewRequest("GET", "/flights/abc", nil)

	handler.get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetByID")
}
