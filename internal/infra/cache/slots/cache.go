// Package slots caches available-slot lookups in Redis. The cache is an
// optimization only: every error degrades to a miss and the caller recomputes
// from Postgres.
package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/evcsm/EVCS-BookingService/internal/domain"
)

// ErrCacheMiss is returned when no cached value exists for the window.
var ErrCacheMiss = errors.New("slots.cache: cache miss")

const keyPrefix = "availslots"

// Cache stores computed available-slot lists keyed by station and window.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a slots cache with the given entry TTL.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(stationID string, start, end time.Time) string {
	return fmt.Sprintf("%s:%s:%d:%d", keyPrefix, stationID, start.UTC().Unix(), end.UTC().Unix())
}

// Get returns the cached available slots for the window, or ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, stationID string, start, end time.Time) ([]*domain.Slot, error) {
	payload, err := c.client.Get(ctx, cacheKey(stationID, start, end)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("slots.cache: Get - fetch key: %w", err)
	}

	var slots []*domain.Slot
	if err := json.Unmarshal(payload, &slots); err != nil {
		return nil, fmt.Errorf("slots.cache: Get - decode payload: %w", err)
	}
	return slots, nil
}

// Set stores the available slots for the window.
func (c *Cache) Set(ctx context.Context, stationID string, start, end time.Time, slots []*domain.Slot) error {
	payload, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("slots.cache: Set - encode payload: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(stationID, start, end), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("slots.cache: Set - store key: %w", err)
	}
	return nil
}

// Noop is the cache used when Redis is not configured. Get always misses.
type Noop struct{}

func (Noop) Get(context.Context, string, time.Time, time.Time) ([]*domain.Slot, error) {
	return nil, ErrCacheMiss
}

func (Noop) Set(context.Context, string, time.Time, time.Time, []*domain.Slot) error {
	return nil
}

func (Noop) InvalidateStation(context.Context, string) error {
	return nil
}

// InvalidateStation drops every cached window of a station. Called after a
// booking is created, moved or cancelled on that station.
func (c *Cache) InvalidateStation(ctx context.Context, stationID string) error {
	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, stationID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("slots.cache: InvalidateStation - scan keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("slots.cache: InvalidateStation - delete keys: %w", err)
	}
	return nil
}
