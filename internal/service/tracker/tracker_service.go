package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/skywings/skybooking/internal/domain"
	"github.com/skywings/skybooking/internal/ident"
	"github.com/skywings/skybooking/internal/repository"
)

// Tracking codes longer than this are rejected before any store lookup.
const maxCodeLength = 10

// BookingSnapshot is the read-only merged view handed to the tracking
// surface: the immutable booking plus the flight's current operational
// state. It is never persisted.
type BookingSnapshot struct {
	Booking      domain.Booking
	Flight       domain.Flight
	FlightStatus domain.FlightStatus
	DelayMinutes int
	HasDelay     bool
	// Gate is the gate to display: the flight's current gate when assigned,
	// otherwise the gate recorded at confirmation. The stored booking gate
	// is never rewritten.
	Gate        string
	GateChanged bool
}

type StatusTracker interface {
	Resolve(ctx context.Context, rawCode string) (*BookingSnapshot, error)
}

type TrackerService struct {
	bookings repository.BookingRepository
	flights  repository.FlightRepository
}

func NewTrackerService(bookings repository.BookingRepository, flights repository.FlightRepository) *TrackerService {
	return &TrackerService{bookings: bookings, flights: flights}
}

// Resolve looks a tracking code up case-insensitively and merges in the
// live flight state. The flight is fetched at resolve time, not replayed
// from confirmation, so delay and gate may differ from the printed ticket.
func (s *TrackerService) Resolve(ctx context.Context, rawCode string) (*BookingSnapshot, error) {
	code, err := NormalizeCode(rawCode)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByTrackingCode(ctx, code)
	if err != nil {
		return nil, err
	}

	flight, err := s.flights.GetByID(ctx, booking.FlightID)
	if err != nil {
		return nil, err
	}

	snapshot := &BookingSnapshot{
		Booking:      *booking,
		Flight:       *flight,
		FlightStatus: flight.Status,
		DelayMinutes: flight.DelayMinutes,
		HasDelay:     flight.DelayMinutes > 0,
		Gate:         booking.Gate,
	}
	if current := flight.CurrentGate(); current != "" && current != booking.Gate {
		snapshot.Gate = current
		snapshot.GateChanged = true
	}
	return snapshot, nil
}

// NormalizeCode trims and uppercases user input and rejects anything that
// cannot be a tracking code: too long, or containing symbols outside the
// code alphabet.
func NormalizeCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" || len(code) > maxCodeLength {
		return "", domain.ErrMalformedCode
	}
	for _, r := range code {
		if !strings.ContainsRune(ident.Alphabet, r) {
			return "", fmt.Errorf("%w: unexpected character %q", domain.ErrMalformedCode, r)
		}
	}
	return code, nil
}

// EstimatedDeparture applies the flight's delay to its scheduled departure
// for display. The stored schedule and boarding time are left as booked.
func EstimatedDeparture(flight *domain.Flight) time.Time {
	return flight.DepartureTime.Add(time.Duration(flight.DelayMinutes) * time.Minute)
}

var _ StatusTracker = (*TrackerService)(nil)
