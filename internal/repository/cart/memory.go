package cart

import (
	"context"
	"sync"
	"time"

	"pizza-storefront/internal/domain"
)

type memoryEntry struct {
	cart      domain.Cart
	expiresAt time.Time
}

type memoryRepo struct {
	mu    sync.RWMutex
	carts map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemory keeps carts in process. A zero ttl keeps them forever.
func NewMemory(ttl time.Duration) Repository {
	return &memoryRepo{
		carts: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (r *memoryRepo) Get(_ context.Context, sessionID string) (domain.Cart, error) {
	r.mu.RLock()
	entry, ok := r.carts[sessionID]
	r.mu.RUnlock()
	if !ok {
		return domain.Cart{}, nil
	}
	if !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt) {
		r.mu.Lock()
		delete(r.carts, sessionID)
		r.mu.Unlock()
		return domain.Cart{}, nil
	}
	return cloneCart(entry.cart), nil
}

func (r *memoryRepo) Save(_ context.Context, sessionID string, cart domain.Cart) error {
	entry := memoryEntry{cart: cloneCart(cart)}
	if r.ttl > 0 {
		entry.expiresAt = r.now().Add(r.ttl)
	}
	r.mu.Lock()
	r.carts[sessionID] = entry
	r.mu.Unlock()
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.carts, sessionID)
	r.mu.Unlock()
	return nil
}

func cloneCart(c domain.Cart) domain.Cart {
	if c.Items == nil {
		return domain.Cart{}
	}
	items := make([]domain.CartLineItem, len(c.Items))
	copy(items, c.Items)
	return domain.Cart{Items: items}
}
