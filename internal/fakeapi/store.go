// Package fakeapi is an in-memory stand-in for the remote order API, used for
// local development and end-to-end tests.
package fakeapi

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pizza-storefront/internal/domain"
)

var errNotCancellable = errors.New("only pending orders can be cancelled")

const deliveryEstimate = 45 * time.Minute

type Store struct {
	mu     sync.Mutex
	orders map[string]domain.OrderResponse
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{
		orders: make(map[string]domain.OrderResponse),
		now:    time.Now,
	}
}

func (s *Store) Create(sub domain.OrderSubmission) domain.OrderResponse {
	now := s.now().UTC()
	order := domain.OrderResponse{
		OrderSubmission: sub,
		ID:              uuid.NewString(),
		Status:          domain.StatusPending,
		CreatedAt:       now.Unix(),
		UpdatedAt:       now.Unix(),
	}
	if sub.Type == domain.FulfillmentDelivery {
		eta := now.Add(deliveryEstimate).Unix()
		order.EstimatedDeliveryTime = &eta
	}

	s.mu.Lock()
	s.orders[order.ID] = order
	s.mu.Unlock()
	return order
}

func (s *Store) Get(id string) (domain.OrderResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return domain.OrderResponse{}, domain.ErrNotFound
	}
	return order, nil
}

// List returns the orders of a location, oldest first.
func (s *Store) List(locationID string) []domain.OrderResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.OrderResponse, 0, len(s.orders))
	for _, o := range s.orders {
		if o.LocationID == locationID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt == out[j].CreatedAt {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt < out[j].CreatedAt
	})
	return out
}

func (s *Store) SetStatus(id string, status domain.OrderStatus) (domain.OrderResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return domain.OrderResponse{}, domain.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = s.now().UTC().Unix()
	s.orders[id] = order
	return order, nil
}

func (s *Store) Cancel(id string) (domain.OrderResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return domain.OrderResponse{}, domain.ErrNotFound
	}
	if order.Status != domain.StatusPending {
		return domain.OrderResponse{}, errNotCancellable
	}
	order.Status = domain.StatusCancelled
	order.UpdatedAt = s.now().UTC().Unix()
	s.orders[id] = order
	return order, nil
}
