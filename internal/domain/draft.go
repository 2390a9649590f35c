package domain

import "time"

// BookingDraft carries the pre-confirmation lifecycle state for one client
// session. It lives in redis with the same TTL as the seat hold, so an
// abandoned flow expires together with its hold.
type BookingDraft struct {
	ID        string         `json:"id"`
	State     LifecycleState `json:"state"`
	FlightID  int64          `json:"flight_id"`
	Seat      string         `json:"seat"`
	HoldToken string         `json:"hold_token"`
	Passenger Passenger      `json:"passenger"`
	ExpiresAt time.Time      `json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
}
