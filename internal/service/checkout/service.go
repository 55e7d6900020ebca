// Package checkout validates the customer's details, assembles the order
// payload from the cart and submits it to the order API.
package checkout

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pizza-storefront/internal/domain"
)

type cartStore interface {
	State(ctx context.Context, sessionID string) (domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type orderSubmitter interface {
	CreateOrder(ctx context.Context, order domain.OrderSubmission) (*domain.OrderResponse, error)
}

// Summary is the checkout view of a non-empty cart.
type Summary struct {
	Items []domain.CartLineItem `json:"items"`
	Total decimal.Decimal       `json:"total"`
}

type Service struct {
	cart       cartStore
	orders     orderSubmitter
	locationID string
	logger     *zap.Logger
}

func New(cart cartStore, orders orderSubmitter, locationID string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cart: cart, orders: orders, locationID: locationID, logger: logger}
}

// Summary returns domain.ErrCartEmpty when there is nothing to check out.
func (s *Service) Summary(ctx context.Context, sessionID string) (Summary, error) {
	cart, err := s.cart.State(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	if cart.IsEmpty() {
		return Summary{}, domain.ErrCartEmpty
	}
	return Summary{Items: cart.Items, Total: cart.Total().Round(2)}, nil
}

// PlaceOrder validates form, submits the session's cart and clears the cart
// once the order API accepts it. On any failure the cart is left as it was.
// Submitting twice creates two orders.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, form Form) (*domain.OrderResponse, error) {
	cart, err := s.cart.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrCartEmpty
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	order := Assemble(cart.Items, form, s.locationID)
	created, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Warn("order submission failed",
			zap.String("session_id", sessionID),
			zap.Int("items", len(order.Items)),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.cart.Clear(ctx, sessionID); err != nil {
		s.logger.Error("clear cart after order", zap.String("order_id", created.ID), zap.Error(err))
	}
	s.logger.Info("order placed",
		zap.String("order_id", created.ID),
		zap.Float64("total", order.TotalAmount),
		zap.String("type", string(order.Type)),
	)
	return created, nil
}
