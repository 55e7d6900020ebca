package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pizza-storefront/internal/domain"
)

const cartKeyPrefix = "cart:"

type redisRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis stores each cart as a JSON document that expires ttl after its
// last write.
func NewRedis(client *redis.Client, ttl time.Duration) Repository {
	return &redisRepo{client: client, ttl: ttl}
}

func (r *redisRepo) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	raw, err := r.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("get cart: %w", err)
	}
	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("decode cart: %w", err)
	}
	return cart, nil
}

func (r *redisRepo) Save(ctx context.Context, sessionID string, cart domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return r.client.Set(ctx, cartKeyPrefix+sessionID, raw, r.ttl).Err()
}

func (r *redisRepo) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, cartKeyPrefix+sessionID).Err()
}
