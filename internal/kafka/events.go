package kafka

import "time"

// BookingEvent is published on every effectful lifecycle transition and
// consumed by the notifications worker.
type BookingEvent struct {
	Type         string    `json:"type"`
	TrackingCode string    `json:"tracking_code"`
	FlightID     int64     `json:"flight_id"`
	Seat         string    `json:"seat"`
	Gate         string    `json:"gate"`
	BoardingTime string    `json:"boarding_time"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	PriceCents   int64     `json:"price_cents"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// FlightStatusEvent is the wire shape of the flight-status feed. A nil Gate
// means "unchanged".
type FlightStatusEvent struct {
	FlightID     int64   `json:"flight_id"`
	Status       string  `json:"status"`
	DelayMinutes int     `json:"delay_minutes"`
	Gate         *string `json:"gate"`
}
