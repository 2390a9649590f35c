package seats

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/skywings/skybooking/internal/domain"
	"github.com/skywings/skybooking/internal/repository"
)

// SeatInventory owns who holds which seat. All cross-session contention
// lands here: the redis lock filters racers cheaply, the seat_holds unique
// constraint decides the winner.
type SeatInventory interface {
	Hold(ctx context.Context, flightID int64, seat, holderID string) (*domain.SeatHold, error)
	Commit(ctx context.Context, token string) (*domain.SeatHold, error)
	Link(ctx context.Context, token string, bookingID int64) error
	Release(ctx context.Context, token string) error
	ReleaseSeat(ctx context.Context, flightID int64, seat string) error
	SweepExpired(ctx context.Context) ([]domain.SeatHold, error)
}

type SeatLocker interface {
	AcquireSeatLock(ctx context.Context, flightID int64, seat string, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightID int64, seat string) error
}

type SeatService struct {
	holds   repository.SeatHoldRepository
	locker  SeatLocker
	holdTTL time.Duration
	now     func() time.Time
}

type SeatServiceOption func(*SeatService)

func WithClock(now func() time.Time) SeatServiceOption {
	return func(s *SeatService) {
		s.now = now
	}
}

func NewSeatService(holds repository.SeatHoldRepository, locker SeatLocker, holdTTL time.Duration, opts ...SeatServiceOption) *SeatService {
	service := &SeatService{
		holds:   holds,
		locker:  locker,
		holdTTL: holdTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Hold claims (flight, seat) for holderID until the TTL elapses. Exactly one
// of any set of concurrent callers wins; the rest get ErrSeatUnavailable with
// no state left behind.
func (s *SeatService) Hold(ctx context.Context, flightID int64, seat, holderID string) (*domain.SeatHold, error) {
	locked := false
	if s.locker != nil {
		ok, err := s.locker.AcquireSeatLock(ctx, flightID, seat, s.holdTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrSeatUnavailable
		}
		locked = true
	}

	hold := &domain.SeatHold{
		FlightID:  flightID,
		Seat:      seat,
		HolderID:  holderID,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(s.holdTTL),
	}
	if err := s.holds.Hold(ctx, hold); err != nil {
		if locked {
			_ = s.locker.ReleaseSeatLock(ctx, flightID, seat)
		}
		return nil, err
	}
	return hold, nil
}

// Commit makes the hold permanent. Expiry is re-checked against the store's
// clock; a commit against an already-booked token is a no-op success.
func (s *SeatService) Commit(ctx context.Context, token string) (*domain.SeatHold, error) {
	hold, err := s.holds.Commit(ctx, token, s.now())
	if err != nil {
		return nil, err
	}
	if s.locker != nil {
		_ = s.locker.ReleaseSeatLock(ctx, hold.FlightID, hold.Seat)
	}
	return hold, nil
}

// Link records the booking that now owns a committed seat.
func (s *SeatService) Link(ctx context.Context, token string, bookingID int64) error {
	return s.holds.LinkBooking(ctx, token, bookingID)
}

// Release hands the seat back early, e.g. when the user navigates away.
// Releasing a hold that already evaporated is fine.
func (s *SeatService) Release(ctx context.Context, token string) error {
	hold, err := s.holds.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrHoldNotFound) {
			return nil
		}
		return err
	}

	if err := s.holds.ReleaseByToken(ctx, token); err != nil {
		return err
	}
	if s.locker != nil {
		_ = s.locker.ReleaseSeatLock(ctx, hold.FlightID, hold.Seat)
	}
	return nil
}

// ReleaseSeat frees a booked seat for resale after a cancellation.
func (s *SeatService) ReleaseSeat(ctx context.Context, flightID int64, seat string) error {
	if err := s.holds.ReleaseSeat(ctx, flightID, seat); err != nil {
		return err
	}
	if s.locker != nil {
		_ = s.locker.ReleaseSeatLock(ctx, flightID, seat)
	}
	return nil
}

// SweepExpired reverts lapsed holds to available. Run periodically by the
// worker; the TTL check in Commit does not depend on this having run.
func (s *SeatService) SweepExpired(ctx context.Context) ([]domain.SeatHold, error) {
	swept, err := s.holds.SweepExpired(ctx, s.now())
	if err != nil {
		return nil, err
	}
	if s.locker != nil {
		for _, h := range swept {
			_ = s.locker.ReleaseSeatLock(ctx, h.FlightID, h.Seat)
		}
	}
	return swept, nil
}

var _ SeatInventory = (*SeatService)(nil)
