package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/skywings/skybooking/config"
)

// Consumer reads one topic as part of the configured consumer group and
// hands each message to a typed handler. A message that does not decode is
// logged and skipped; it would fail identically on every redelivery.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(cfg config.KafkaConfig, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           cfg.Brokers,
			GroupID:           cfg.GroupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// ConsumeBookingEvents drives handler with decoded booking lifecycle events
// until the context is canceled or the handler fails.
func (c *Consumer) ConsumeBookingEvents(ctx context.Context, handler func(context.Context, BookingEvent) error) error {
	return c.consume(ctx, func(ctx context.Context, msg kafka.Message) error {
		event, err := decodeBookingEvent(msg.Value)
		if err != nil {
			log.Printf("skip malformed booking event: %v", err)
			return nil
		}
		return handler(ctx, event)
	})
}

// ConsumeFlightStatusEvents drives handler with decoded flight-status feed
// events until the context is canceled or the handler fails.
func (c *Consumer) ConsumeFlightStatusEvents(ctx context.Context, handler func(context.Context, FlightStatusEvent) error) error {
	return c.consume(ctx, func(ctx context.Context, msg kafka.Message) error {
		event, err := decodeFlightStatusEvent(msg.Value)
		if err != nil {
			log.Printf("skip malformed flight status event: %v", err)
			return nil
		}
		return handler(ctx, event)
	})
}

func (c *Consumer) consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
}

func decodeBookingEvent(data []byte) (BookingEvent, error) {
	var event BookingEvent
	err := json.Unmarshal(data, &event)
	return event, err
}

func decodeFlightStatusEvent(data []byte) (FlightStatusEvent, error) {
	var event FlightStatusEvent
	err := json.Unmarshal(data, &event)
	return event, err
}
