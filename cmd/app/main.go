package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skywings/skybooking/config"
	"github.com/skywings/skybooking/internal/bootstrap"
	"github.com/skywings/skybooking/internal/cache"
	"github.com/skywings/skybooking/internal/ident"
	"github.com/skywings/skybooking/internal/kafka"
	"github.com/skywings/skybooking/internal/repository"
	"github.com/skywings/skybooking/internal/service/booking"
	"github.com/skywings/skybooking/internal/service/flights"
	"github.com/skywings/skybooking/internal/service/seats"
	"github.com/skywings/skybooking/internal/service/tracker"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	seatRepo := repository.NewSeatHoldRepository(pool)

	generator := ident.NewGenerator(bookingRepo, cfg.Booking.CarrierPrefix)
	seatService := seats.NewSeatService(seatRepo, redisCache, time.Duration(cfg.Booking.HoldTTLMinutes)*time.Minute)
	flightService := flights.NewFlightService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		seatService,
		redisCache,
		generator,
		producer,
		cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithGateLayout(cfg.Booking.GateTerminals, cfg.Booking.GatesPerTerminal),
	)
	trackerService := tracker.NewTrackerService(bookingRepo, flightRepo)

	if err := bootstrap.Run(ctx, cfg, flightService, bookingService, trackerService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
