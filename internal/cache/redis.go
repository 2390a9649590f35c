package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skywings/skybooking/config"
	"github.com/skywings/skybooking/internal/domain"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

// AcquireSeatLock is the fast-path contention filter in front of the durable
// seat ledger. The PG unique constraint remains the arbiter; this just keeps
// obvious losers off the database.
func (c *RedisCache) AcquireSeatLock(ctx context.Context, flightID int64, seat string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, seatLockKey(flightID, seat), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSeatLock(ctx context.Context, flightID int64, seat string) error {
	return c.client.Del(ctx, seatLockKey(flightID, seat)).Err()
}

func (c *RedisCache) GetFlights(ctx context.Context, originCode, destinationCode string) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey(originCode, destinationCode)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, originCode, destinationCode string, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(originCode, destinationCode), payload, c.flightsTTL).Err()
}

// InvalidateFlights drops every cached search result. Called when the status
// feed rewrites a flight.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "cache:flights:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// SaveDraft stores the pre-confirmation lifecycle state under the draft's
// remaining hold TTL, so an abandoned flow evaporates with its hold.
func (c *RedisCache) SaveDraft(ctx context.Context, draft *domain.BookingDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	ttl := time.Until(draft.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrHoldExpired
	}
	return c.client.Set(ctx, draftKey(draft.ID), payload, ttl).Err()
}

func (c *RedisCache) GetDraft(ctx context.Context, id string) (*domain.BookingDraft, error) {
	data, err := c.client.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, err
	}

	var draft domain.BookingDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (c *RedisCache) DeleteDraft(ctx context.Context, id string) error {
	return c.client.Del(ctx, draftKey(id)).Err()
}

func flightsKey(originCode, destinationCode string) string {
	return fmt.Sprintf("cache:flights:%s:%s", originCode, destinationCode)
}

func seatLockKey(flightID int64, seat string) string {
	return fmt.Sprintf("lock:flight:%d:seat:%s", flightID, seat)
}

func draftKey(id string) string {
	return "draft:" + id
}
