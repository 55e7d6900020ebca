// Package cart stores the cart of every storefront session.
package cart

import (
	"context"

	"pizza-storefront/internal/domain"
)

// Repository persists carts keyed by session id. Get returns an empty cart
// for sessions that have none.
type Repository interface {
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
