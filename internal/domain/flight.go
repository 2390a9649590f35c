package domain

import "time"

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "scheduled"
	FlightStatusDelayed   FlightStatus = "delayed"
	FlightStatusBoarding  FlightStatus = "boarding"
	FlightStatusDeparted  FlightStatus = "departed"
	FlightStatusCancelled FlightStatus = "cancelled"
)

// Flight is immutable from the booking side. Status, DelayMinutes and Gate
// are written only by the flight-status feed.
type Flight struct {
	ID              int64
	Airline         string
	FlightNumber    string
	Origin          string
	OriginCode      string
	Destination     string
	DestinationCode string
	DepartureTime   time.Time
	ArrivalTime     time.Time
	PriceCents      int64
	Aircraft        string
	SeatRows        int
	SeatLetters     string
	Status          FlightStatus
	DelayMinutes    int
	Gate            *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CurrentGate returns the assigned gate or an empty string while unassigned.
func (f *Flight) CurrentGate() string {
	if f.Gate == nil {
		return ""
	}
	return *f.Gate
}
