package domain

import "time"

type SeatHoldState string

const (
	SeatHoldStateHeld   SeatHoldState = "held"
	SeatHoldStateBooked SeatHoldState = "booked"
)

// SeatHold is a row in the seat ledger. A seat with no row is available;
// the unique (flight, seat) constraint guarantees at most one holder.
type SeatHold struct {
	ID        int64
	FlightID  int64
	Seat      string
	State     SeatHoldState
	HolderID  string
	Token     string
	BookingID *int64
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (h *SeatHold) Expired(now time.Time) bool {
	return h.State == SeatHoldStateHeld && !h.ExpiresAt.After(now)
}
