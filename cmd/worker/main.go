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
	"github.com/skywings/skybooking/internal/cache"
	"github.com/skywings/skybooking/internal/email"
	"github.com/skywings/skybooking/internal/kafka"
	"github.com/skywings/skybooking/internal/repository"
	"github.com/skywings/skybooking/internal/service/flights"
	"github.com/skywings/skybooking/internal/service/seats"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)

	flightRepo := repository.NewFlightRepository(pool)
	seatRepo := repository.NewSeatHoldRepository(pool)

	flightService := flights.NewFlightService(flightRepo, redisCache)
	seatService := seats.NewSeatService(seatRepo, redisCache, time.Duration(cfg.Booking.HoldTTLMinutes)*time.Minute)

	emailSender := email.NewSender()

	notifications := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.NotificationsTopic)
	defer notifications.Close()

	go func() {
		if err := notifications.ConsumeBookingEvents(ctx, emailSender.Send); err != nil {
			log.Printf("notifications consumer stopped: %v", err)
		}
	}()

	statusFeed := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.FlightStatusTopic)
	defer statusFeed.Close()

	go func() {
		if err := statusFeed.ConsumeFlightStatusEvents(ctx, flightService.ApplyStatusEvent); err != nil {
			log.Printf("flight status consumer stopped: %v", err)
		}
	}()

	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.ExpirationSweepSeconds) * time.Second)
	defer sweepTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sweepTicker.C:
			swept, err := seatService.SweepExpired(ctx)
			if err != nil {
				log.Printf("sweep expired holds error: %v", err)
				continue
			}
			if len(swept) > 0 {
				log.Printf("released %d expired seat holds", len(swept))
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}
