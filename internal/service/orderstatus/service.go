// Package orderstatus looks up a customer's order and cancels it while it is
// still pending.
package orderstatus

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"pizza-storefront/internal/domain"
)

const cancelNotAllowed = `Only orders with status "pending" can be cancelled.`

type orderAPI interface {
	Order(ctx context.Context, orderID string) (*domain.OrderResponse, error)
	CancelOrder(ctx context.Context, orderID string) (*domain.OrderResponse, error)
}

// Service keeps the last order each session looked up, for at most ttl.
// Cancel decisions are made against that held copy; the order API has the
// final say.
type Service struct {
	api    orderAPI
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	held     map[string]heldOrder
	lastScan time.Time
}

type heldOrder struct {
	order     domain.OrderResponse
	expiresAt time.Time
}

func New(api orderAPI, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		api:    api,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
		held:   make(map[string]heldOrder),
	}
}

// Fetch loads an order. Every failure, including transport errors, is
// reported as a *domain.NotFoundError.
func (s *Service) Fetch(ctx context.Context, sessionID, orderID string) (domain.OrderResponse, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return domain.OrderResponse{}, domain.NewValidationError("Please enter an order ID.")
	}

	order, err := s.api.Order(ctx, orderID)
	if err != nil {
		s.forget(sessionID)
		s.logger.Info("order lookup failed", zap.String("order_id", orderID), zap.Error(err))
		return domain.OrderResponse{}, &domain.NotFoundError{Entity: "order", ID: orderID, Err: err}
	}

	s.mu.Lock()
	s.holdLocked(sessionID, *order)
	s.mu.Unlock()
	return *order, nil
}

// Cancel asks the order API to cancel orderID. It is refused without a
// remote call unless the session holds that order with status pending. On
// success the held order is marked cancelled and returned as is.
func (s *Service) Cancel(ctx context.Context, sessionID, orderID string) (domain.OrderResponse, error) {
	orderID = strings.TrimSpace(orderID)
	held, ok := s.Held(sessionID)
	if !ok || held.ID != orderID || held.Status != domain.StatusPending {
		return domain.OrderResponse{}, domain.NewValidationError(cancelNotAllowed)
	}

	if _, err := s.api.CancelOrder(ctx, orderID); err != nil {
		s.logger.Warn("order cancel failed", zap.String("order_id", orderID), zap.Error(err))
		return domain.OrderResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.held[sessionID]
	if !ok || current.order.ID != orderID {
		current.order = held
	}
	current.order.Status = domain.StatusCancelled
	s.holdLocked(sessionID, current.order)
	return current.order, nil
}

// Held returns the order last fetched by the session, unless it has expired.
func (s *Service) Held(sessionID string) (domain.OrderResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.held[sessionID]
	if !ok {
		return domain.OrderResponse{}, false
	}
	if s.now().After(entry.expiresAt) {
		delete(s.held, sessionID)
		return domain.OrderResponse{}, false
	}
	return entry.order, true
}

// holdLocked stores order for the session and drops expired entries at most
// once per ttl.
func (s *Service) holdLocked(sessionID string, order domain.OrderResponse) {
	now := s.now()
	s.held[sessionID] = heldOrder{order: order, expiresAt: now.Add(s.ttl)}
	if now.Sub(s.lastScan) < s.ttl {
		return
	}
	s.lastScan = now
	for id, entry := range s.held {
		if now.After(entry.expiresAt) {
			delete(s.held, id)
		}
	}
}

func (s *Service) forget(sessionID string) {
	s.mu.Lock()
	delete(s.held, sessionID)
	s.mu.Unlock()
}
