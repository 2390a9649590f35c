package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/skywings/skybooking/internal/domain"
	"github.com/skywings/skybooking/internal/kafka"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Search(ctx context.Context, originCode, destinationCode string) ([]domain.Flight, error) {
	args := m.Called(ctx, originCode, destinationCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) ApplyStatus(ctx context.Context, flightID int64, status domain.FlightStatus, delayMinutes int, gate *string) error {
	args := m.Called(ctx, flightID, status, delayMinutes, gate)
	return args.Error(0)
}

type MockFlightCache struct {
	mock.Mock
}

func (m *MockFlightCache) GetFlights(ctx context.Context, originCode, destinationCode string) ([]domain.Flight, error) {
	args := m.Called(ctx, originCode, destinationCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightCache) SetFlights(ctx context.Context, originCode, destinationCode string, flights []domain.Flight) error {
	args := m.Called(ctx, originCode, destinationCode, flights)
	return args.Error(0)
}

func (m *MockFlightCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func sampleFlights() []domain.Flight {
	return []domain.Flight{
		{
			ID:              1,
			Airline:         "SkyWings Airlines",
			FlightNumber:    "SW 201",
			OriginCode:      "JFK",
			DestinationCode: "LHR",
			DepartureTime:   time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC),
			ArrivalTime:     time.Date(2026, 3, 10, 20, 45, 0, 0, time.UTC),
			PriceCents:      64900,
			SeatRows:        30,
			SeatLetters:     "ABCDEF",
			Status:          domain.FlightStatusScheduled,
		},
	}
}

func TestFlightService_Search_CacheMiss(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockFlightCache{}
	service := NewFlightService(repo, cache)

	ctx := context.Background()
	flights := sampleFlights()

	cache.On("GetFlights", ctx, "JFK", "LHR").Return(nil, nil).Once()
	repo.On("Search", ctx, "JFK", "LHR").Return(flights, nil).Once()
	cache.On("SetFlights", ctx, "JFK", "LHR", flights).Return(nil).Once()

	result, err := service.Search(ctx, "JFK", "LHR")
	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	cache.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestFlightService_Search_CacheHit(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockFlightCache{}
	service := NewFlightService(repo, cache)

	ctx := context.Background()
	flights := sampleFlights()

	cache.On("GetFlights", ctx, "JFK", "LHR").Return(flights, nil).Once()

	result, err := service.Search(ctx, "JFK", "LHR")
	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	cache.AssertExpectations(t)
	repo.AssertNotCalled(t, "Search")
	cache.AssertNotCalled(t, "SetFlights")
}

func TestFlightService_Search_CacheErrorFallsThrough(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockFlightCache{}
	service := NewFlightService(repo, cache)

	ctx := context.Background()
	flights := sampleFlights()

	cache.On("GetFlights", ctx, "JFK", "LHR").Return(nil, errors.New("cache error")).Once()
	repo.On("Search", ctx, "JFK", "LHR").Return(flights, nil).Once()
	cache.On("SetFlights", ctx, "JFK", "LHR", flights).Return(nil).Once()

	result, err := service.Search(ctx, "JFK", "LHR")
	assert.NoError(t, err)
	assert.Equal(t, flights, result)
}

func TestFlightService_Search_NoCache(t *testing.T) {
	repo := &MockFlightRepository{}
	service := NewFlightService(repo, nil)

	ctx := context.Background()
	flights := sampleFlights()

	repo.On("Search", ctx, "", "").Return(flights, nil).Once()

	result, err := service.Search(ctx, "", "")
	assert.NoError(t, err)
	assert.Equal(t, flights, result)
}

func TestFlightService_GetByID_NotFound(t *testing.T) {
	repo := &MockFlightRepository{}
	service := NewFlightService(repo, nil)

	ctx := context.Background()
	repo.On("GetByID", ctx, int64(999)).Return(nil, domain.ErrFlightNotFound).Once()

	result, err := service.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	assert.Nil(t, result)
}

func TestFlightService_ApplyStatusEvent_InvalidatesCache(t *testing.T) {
	repo := &MockFlightRepository{}
	cache := &MockFlightCache{}
	service := NewFlightService(repo, cache)

	ctx := context.Background()
	gate := "C7"
	event := kafka.FlightStatusEvent{FlightID: 1, Status: "delayed", DelayMinutes: 45, Gate: &gate}

	repo.On("ApplyStatus", ctx, int64(1), domain.FlightStatusDelayed, 45, &gate).Return(nil).Once()
	cache.On("InvalidateFlights", ctx).Return(nil).Once()

	assert.NoError(t, service.ApplyStatusEvent(ctx, event))

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
