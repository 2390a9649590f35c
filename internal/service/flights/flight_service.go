package flights

import (
	"context"

	"github.com/skywings/skybooking/internal/domain"
	"github.com/skywings/skybooking/internal/kafka"
	"github.com/skywings/skybooking/internal/repository"
)

type FlightUseCase interface {
	Search(ctx context.Context, originCode, destinationCode string) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	ApplyStatusEvent(ctx context.Context, event kafka.FlightStatusEvent) error
}

type FlightCache interface {
	GetFlights(ctx context.Context, originCode, destinationCode string) ([]domain.Flight, error)
	SetFlights(ctx context.Context, originCode, destinationCode string, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) Search(ctx context.Context, originCode, destinationCode string) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx, originCode, destinationCode); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.Search(ctx, originCode, destinationCode)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, originCode, destinationCode, flights)
	}
	return flights, nil
}

// GetByID always reads the store, never the search cache, so callers see the
// flight's current operational state.
func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// ApplyStatusEvent is the ingestion point for the external flight-status
// feed: delay, gate change, cancellation. Booking rows are never touched
// here; StatusTracker merges the new flight state at read time.
func (s *FlightService) ApplyStatusEvent(ctx context.Context, event kafka.FlightStatusEvent) error {
	if err := s.repo.ApplyStatus(ctx, event.FlightID, domain.FlightStatus(event.Status), event.DelayMinutes, event.Gate); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return nil
}

var _ FlightUseCase = (*FlightService)(nil)
