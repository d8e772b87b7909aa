// Package redis implements cart storage on a redis key/value store.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spaethfarms/storefront/internal/cart"
)

// Storage persists each cart as one JSON blob under keyPrefix + cartID.
// A zero TTL keeps carts until checkout deletes them.
type Storage struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

var _ cart.Storage = (*Storage)(nil)

// New creates a redis-backed storage.
func New(client *redis.Client, keyPrefix string, ttl time.Duration) *Storage {
	return &Storage{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// Load returns the saved line items for a cart.
func (s *Storage) Load(ctx context.Context, cartID string) ([]cart.LineItem, error) {
	data, err := s.client.Get(ctx, s.key(cartID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cart.ErrNoSavedCart
		}
		return nil, fmt.Errorf("failed to read cart from redis: %w", err)
	}
	var items []cart.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode saved cart: %w", err)
	}
	return items, nil
}

// Save replaces the saved line items for a cart.
func (s *Storage) Save(ctx context.Context, cartID string, items []cart.LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.key(cartID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cart to redis: %w", err)
	}
	return nil
}

// Delete removes the saved cart.
func (s *Storage) Delete(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, s.key(cartID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart from redis: %w", err)
	}
	return nil
}

func (s *Storage) key(cartID string) string {
	return s.keyPrefix + cartID
}
