package domain

import "time"

type Passenger struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Passport  string `json:"passport,omitempty"`
}

// Booking is the aggregate produced at confirmation. TrackingCode is minted
// exactly once and never changes; Seat is fixed for the life of the booking.
// Gate and BoardingTime record what was true at confirmation; live values
// come from the flight at read time.
type Booking struct {
	ID           int64
	TrackingCode string
	FlightID     int64
	Passenger    Passenger
	Seat         string
	Gate         string
	BoardingTime string
	PriceCents   int64
	Status       LifecycleState
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
