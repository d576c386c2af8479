// Package idempotency deduplicates checkout submissions carrying the same key.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL = 24 * time.Hour

	keyPrefix = "checkout:idempotency:"
	pending   = "pending"
)

var (
	// ErrDuplicateKey is returned when the key was already claimed.
	ErrDuplicateKey = errors.New("idempotency key already used")
	ErrKeyNotFound  = errors.New("idempotency key not found")
)

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return Store{
		rdb: rdb,
		ttl: ttl,
	}
}

// Claim reserves key for a new checkout.
func (s Store) Claim(ctx context.Context, key string) error {
	ok, err := s.rdb.SetNX(ctx, keyPrefix+key, pending, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("claiming key: %w", err)
	}

	if !ok {
		return ErrDuplicateKey
	}

	return nil
}

// Complete records the order created under key.
func (s Store) Complete(ctx context.Context, key string, orderID string) error {
	if err := s.rdb.Set(ctx, keyPrefix+key, orderID, s.ttl).Err(); err != nil {
		return fmt.Errorf("completing key: %w", err)
	}

	return nil
}

// Release frees key after a failed checkout so the same submission can be retried.
func (s Store) Release(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("releasing key: %w", err)
	}

	return nil
}

// OrderID returns the order created under key. done is false while the
// checkout holding the key is still running.
func (s Store) OrderID(ctx context.Context, key string) (orderID string, done bool, err error) {
	value, err := s.rdb.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, ErrKeyNotFound
	}
	if err != nil {
		return "", false, fmt.Errorf("getting key: %w", err)
	}

	if value == pending {
		return "", false, nil
	}

	return value, true, nil
}
