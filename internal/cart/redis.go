package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/int-arsh/akash-ecom/internal/domain"
)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:      client,
		baseTTL:     30 * time.Minute,
		checkoutTTL: time.Hour,
	}
}

type RedisStore struct {
	client      *redis.Client
	baseTTL     time.Duration
	checkoutTTL time.Duration
}

func (r *RedisStore) Get(ctx context.Context, cartID string) (domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []domain.CartLine
	if err2 := json.Unmarshal(data, &lines); err2 != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err2)
	}

	return domain.CartFromLines(lines), nil
}

func (r *RedisStore) Save(ctx context.Context, cartID string, c domain.Cart) error {
	data, err := json.Marshal(c.Lines())
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, cartKey(cartID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, cartKey(cartID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisStore) GetCheckout(ctx context.Context, key string) (string, error) {
	url, err := r.client.Get(ctx, checkoutKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCheckoutNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return url, nil
}

func (r *RedisStore) SaveCheckout(ctx context.Context, key, redirectURL string) error {
	if err := r.client.Set(ctx, checkoutKey(key), redirectURL, r.checkoutTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func cartKey(cartID string) string {
	return fmt.Sprintf("cart:%s", cartID)
}

func checkoutKey(key string) string {
	return fmt.Sprintf("checkout:%s", key)
}
