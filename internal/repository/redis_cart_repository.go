package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCartRepositoryImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func CreateNewRedisCartRepository(client *redis.Client, ttl time.Duration) CartRepository {
	return &RedisCartRepositoryImpl{client: client, ttl: ttl}
}

// GetCart returns an empty cart for unknown sessions.
func (r *RedisCartRepositoryImpl) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &domain.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}

	return &cart, nil
}

// SaveCart stores the cart and restarts its expiry window.
func (r *RedisCartRepositoryImpl) SaveCart(ctx context.Context, sessionID string, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (r *RedisCartRepositoryImpl) DeleteCart(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
