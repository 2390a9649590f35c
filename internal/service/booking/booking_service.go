package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skywings/skybooking/internal/domain"
	"github.com/skywings/skybooking/internal/kafka"
	"github.com/skywings/skybooking/internal/repository"
	"github.com/skywings/skybooking/internal/service/seats"
	"github.com/skywings/skybooking/internal/timeutil"
)

type BookingUseCase interface {
	HoldSeat(ctx context.Context, input HoldSeatInput) (*domain.BookingDraft, error)
	SubmitPassenger(ctx context.Context, draftID string, passenger domain.Passenger) (*domain.BookingDraft, error)
	Confirm(ctx context.Context, draftID string) (*domain.Booking, error)
	Abandon(ctx context.Context, draftID string) error
	Transition(ctx context.Context, code string, target domain.LifecycleState) (*domain.Booking, error)
	Cancel(ctx context.Context, code string) (*domain.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
}

type HoldSeatInput struct {
	FlightID int64  `json:"flight_id"`
	Seat     string `json:"seat"`
}

// DraftStore keeps pre-confirmation lifecycle state out of process memory.
type DraftStore interface {
	SaveDraft(ctx context.Context, draft *domain.BookingDraft) error
	GetDraft(ctx context.Context, id string) (*domain.BookingDraft, error)
	DeleteDraft(ctx context.Context, id string) error
}

// Identifiers mints tracking codes and gate labels.
type Identifiers interface {
	TrackingCode(ctx context.Context) (string, error)
	GateLabel(terminals string, gates int) string
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	seats              seats.SeatInventory
	drafts             DraftStore
	ident              Identifiers
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	gateTerminals      string
	gatesPerTerminal   int
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithGateLayout(terminals string, gatesPerTerminal int) BookingServiceOption {
	return func(s *BookingService) {
		s.gateTerminals = terminals
		s.gatesPerTerminal = gatesPerTerminal
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	seatInventory seats.SeatInventory,
	drafts DraftStore,
	ident Identifiers,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:         bookings,
		flights:          flights,
		seats:            seatInventory,
		drafts:           drafts,
		ident:            ident,
		producer:         producer,
		bookingTopic:     bookingTopic,
		gateTerminals:    "ABCD",
		gatesPerTerminal: 40,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// HoldSeat starts a booking flow: searching -> seat-held. A refused hold
// leaves nothing behind.
func (s *BookingService) HoldSeat(ctx context.Context, input HoldSeatInput) (*domain.BookingDraft, error) {
	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if flight.Status == domain.FlightStatusCancelled || flight.Status == domain.FlightStatusDeparted {
		return nil, fmt.Errorf("%w: flight is %s", domain.ErrValidation, flight.Status)
	}
	if err := validateSeat(flight, input.Seat); err != nil {
		return nil, err
	}

	draft := &domain.BookingDraft{
		ID:        uuid.NewString(),
		State:     domain.StateSearching,
		FlightID:  input.FlightID,
		Seat:      input.Seat,
		CreatedAt: s.now(),
	}

	hold, err := s.seats.Hold(ctx, input.FlightID, input.Seat, draft.ID)
	if err != nil {
		return nil, err
	}

	draft.State = domain.StateSeatHeld
	draft.HoldToken = hold.Token
	draft.ExpiresAt = hold.ExpiresAt
	if err := s.drafts.SaveDraft(ctx, draft); err != nil {
		_ = s.seats.Release(ctx, hold.Token)
		return nil, err
	}
	return draft, nil
}

// SubmitPassenger moves seat-held -> passenger-entered. A validation failure
// leaves the draft untouched.
func (s *BookingService) SubmitPassenger(ctx context.Context, draftID string, passenger domain.Passenger) (*domain.BookingDraft, error) {
	draft, err := s.drafts.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(draft.State, domain.StatePassengerEntered) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, draft.State, domain.StatePassengerEntered)
	}
	if err := validatePassenger(passenger); err != nil {
		return nil, err
	}

	draft.Passenger = passenger
	draft.State = domain.StatePassengerEntered
	if err := s.drafts.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Confirm is the single effectful transition of the pre-confirmation flow:
// commit the seat, mint the tracking code, persist the booking. If anything
// fails after the seat commit, the seat is released again so no booked seat
// exists without a booking row.
func (s *BookingService) Confirm(ctx context.Context, draftID string) (*domain.Booking, error) {
	draft, err := s.drafts.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(draft.State, domain.StateConfirmed) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, draft.State, domain.StateConfirmed)
	}

	flight, err := s.flights.GetByID(ctx, draft.FlightID)
	if err != nil {
		return nil, err
	}

	hold, err := s.seats.Commit(ctx, draft.HoldToken)
	if err != nil {
		return nil, err
	}

	code, err := s.ident.TrackingCode(ctx)
	if err != nil {
		s.rollbackSeat(ctx, hold.Token)
		return nil, err
	}

	gate := flight.CurrentGate()
	if gate == "" {
		gate = s.ident.GateLabel(s.gateTerminals, s.gatesPerTerminal)
	}

	booking := &domain.Booking{
		TrackingCode: code,
		FlightID:     flight.ID,
		Passenger:    draft.Passenger,
		Seat:         draft.Seat,
		Gate:         gate,
		BoardingTime: timeutil.BoardingClock(flight.DepartureTime),
		PriceCents:   flight.PriceCents,
		Status:       domain.StateConfirmed,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		s.rollbackSeat(ctx, hold.Token)
		return nil, err
	}

	if err := s.seats.Link(ctx, hold.Token, booking.ID); err != nil {
		log.Printf("link seat %s to booking %s: %v", draft.Seat, booking.TrackingCode, err)
	}
	if err := s.drafts.DeleteDraft(ctx, draftID); err != nil {
		log.Printf("delete draft %s: %v", draftID, err)
	}

	s.publish(ctx, "booking_confirmed", booking)
	return booking, nil
}

// rollbackSeat undoes a committed seat when confirmation failed downstream.
func (s *BookingService) rollbackSeat(ctx context.Context, token string) {
	if err := s.seats.Release(ctx, token); err != nil {
		log.Printf("rollback seat hold %s: %v", token, err)
	}
}

// Abandon ends the flow before confirmation and frees the seat. An already
// expired draft is a no-op; the sweep reclaims its seat.
func (s *BookingService) Abandon(ctx context.Context, draftID string) error {
	draft, err := s.drafts.GetDraft(ctx, draftID)
	if err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			return nil
		}
		return err
	}
	if draft.HoldToken != "" {
		if err := s.seats.Release(ctx, draft.HoldToken); err != nil {
			return err
		}
	}
	return s.drafts.DeleteDraft(ctx, draftID)
}

// Transition applies an operational status change requested by the status
// API. The lifecycle table is the authority: skipping or going backward is
// ErrInvalidTransition. Cancellation goes through Cancel.
func (s *BookingService) Transition(ctx context.Context, code string, target domain.LifecycleState) (*domain.Booking, error) {
	if target == domain.StateCancelled {
		return s.Cancel(ctx, code)
	}

	current, err := s.bookings.GetByTrackingCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(current.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, target)
	}

	updated, err := s.bookings.UpdateStatus(ctx, code, current.Status, target)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "booking_"+strings.ReplaceAll(string(target), "-", "_"), updated)
	return updated, nil
}

// Cancel is the terminal override, allowed from any non-terminal state.
// The booked seat goes back to inventory for resale.
func (s *BookingService) Cancel(ctx context.Context, code string) (*domain.Booking, error) {
	current, err := s.bookings.GetByTrackingCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(current.Status, domain.StateCancelled) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, domain.StateCancelled)
	}

	updated, err := s.bookings.UpdateStatus(ctx, code, current.Status, domain.StateCancelled)
	if err != nil {
		return nil, err
	}
	if err := s.seats.ReleaseSeat(ctx, updated.FlightID, updated.Seat); err != nil {
		log.Printf("release seat %s on flight %d after cancel: %v", updated.Seat, updated.FlightID, err)
	}
	s.publish(ctx, "booking_cancelled", updated)
	return updated, nil
}

func (s *BookingService) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	return s.bookings.ListByEmail(ctx, email)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:         eventType,
		TrackingCode: booking.TrackingCode,
		FlightID:     booking.FlightID,
		Seat:         booking.Seat,
		Gate:         booking.Gate,
		BoardingTime: booking.BoardingTime,
		Email:        booking.Passenger.Email,
		Status:       string(booking.Status),
		PriceCents:   booking.PriceCents,
		OccurredAt:   s.now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.TrackingCode, event); err != nil {
		log.Printf("publish %s for booking %s: %v", eventType, booking.TrackingCode, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.TrackingCode, event); err != nil {
			log.Printf("publish %s notification for booking %s: %v", eventType, booking.TrackingCode, err)
		}
	}
}

func validatePassenger(p domain.Passenger) error {
	switch {
	case strings.TrimSpace(p.FirstName) == "":
		return fmt.Errorf("%w: first name is required", domain.ErrValidation)
	case strings.TrimSpace(p.LastName) == "":
		return fmt.Errorf("%w: last name is required", domain.ErrValidation)
	case strings.TrimSpace(p.Email) == "":
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	case strings.TrimSpace(p.Phone) == "":
		return fmt.Errorf("%w: phone is required", domain.ErrValidation)
	}
	return nil
}

// validateSeat checks the label against the aircraft's actual layout, e.g.
// "14A" on a 30-row A-F cabin.
func validateSeat(flight *domain.Flight, seat string) error {
	if len(seat) < 2 {
		return fmt.Errorf("%w: seat %q is malformed", domain.ErrValidation, seat)
	}
	letter := seat[len(seat)-1:]
	row, err := strconv.Atoi(seat[:len(seat)-1])
	if err != nil {
		return fmt.Errorf("%w: seat %q is malformed", domain.ErrValidation, seat)
	}
	if row < 1 || row > flight.SeatRows || !strings.Contains(flight.SeatLetters, letter) {
		return fmt.Errorf("%w: seat %q is outside the %s layout", domain.ErrValidation, seat, flight.Aircraft)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
