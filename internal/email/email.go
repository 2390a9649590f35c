package email

import (
	"context"
	"fmt"

	"github.com/skywings/skybooking/internal/kafka"
)

// Sender is the outbound notification boundary. Actual delivery is owned by
// an external system; this prints what would be sent.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send email to %s: booking %s %s (flight %d, seat %s)\n",
		event.Email, event.TrackingCode, event.Type, event.FlightID, event.Seat)
	return nil
}
