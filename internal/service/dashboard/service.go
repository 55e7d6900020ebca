// Package dashboard serves the employee view of a location's orders.
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pizza-storefront/internal/domain"
)

const (
	pickupLabel     = "Pickup"
	unknownETALabel = "--"
)

type orderAPI interface {
	Orders(ctx context.Context, locationID string) ([]domain.OrderResponse, error)
	Order(ctx context.Context, orderID string) (*domain.OrderResponse, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.OrderResponse, error)
}

// Row is one line of the orders table.
type Row struct {
	ID           string             `json:"id"`
	Status       domain.OrderStatus `json:"status"`
	Total        string             `json:"total"`
	DeliveryTime string             `json:"deliveryTime"`
}

// ItemDetail describes one ordered pizza.
type ItemDetail struct {
	ID         string                 `json:"id"`
	Type       domain.PizzaKind       `json:"type"`
	Size       domain.Size            `json:"size"`
	Quantity   int                    `json:"quantity"`
	Toppings   []domain.ToppingChoice `json:"toppings"`
	Exclusions []domain.Topping       `json:"toppingExclusions"`
	TotalPrice string                 `json:"totalPrice"`
}

type Details struct {
	Row
	CreatedAt string                 `json:"createdAt"`
	Type      domain.FulfillmentType `json:"type"`
	Customer  domain.Customer        `json:"customer"`
	Items     []ItemDetail           `json:"items"`
}

type Service struct {
	api        orderAPI
	locationID string
	loc        *time.Location
	logger     *zap.Logger
}

func New(api orderAPI, locationID string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, locationID: locationID, loc: time.UTC, logger: logger}
}

// Orders lists the location's orders as table rows.
func (s *Service) Orders(ctx context.Context) ([]Row, error) {
	orders, err := s.api.Orders(ctx, s.locationID)
	if err != nil {
		s.logger.Warn("list orders failed", zap.String("location_id", s.locationID), zap.Error(err))
		return nil, err
	}
	rows := make([]Row, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, s.row(o))
	}
	return rows, nil
}

func (s *Service) Order(ctx context.Context, orderID string) (Details, error) {
	o, err := s.api.Order(ctx, orderID)
	if err != nil {
		return Details{}, orderNotFound(orderID, err)
	}

	d := Details{
		Row:       s.row(*o),
		CreatedAt: time.Unix(o.CreatedAt, 0).In(s.loc).Format(time.RFC3339),
		Type:      o.Type,
		Customer:  o.Customer,
		Items:     make([]ItemDetail, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		d.Items = append(d.Items, ItemDetail{
			ID:         item.ID,
			Type:       item.Pizza.Type,
			Size:       item.Pizza.Size,
			Quantity:   item.Pizza.Quantity,
			Toppings:   item.Pizza.Toppings,
			Exclusions: item.Pizza.ToppingExclusions,
			TotalPrice: formatAmount(item.Pizza.TotalPrice),
		})
	}
	return d, nil
}

// UpdateStatus sets the status of an order. raw must be one of the order
// status literals.
func (s *Service) UpdateStatus(ctx context.Context, orderID, raw string) (Row, error) {
	status, err := domain.ParseOrderStatus(raw)
	if err != nil {
		return Row{}, &domain.ValidationError{
			Message: "Unknown order status.",
			Fields:  map[string]string{"status": strings.TrimSpace(raw)},
		}
	}
	updated, err := s.api.UpdateStatus(ctx, orderID, status)
	if err != nil {
		s.logger.Warn("update order status failed",
			zap.String("order_id", orderID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return Row{}, orderNotFound(orderID, err)
	}
	s.logger.Info("order status updated", zap.String("order_id", orderID), zap.String("status", string(status)))
	return s.row(*updated), nil
}

// orderNotFound turns a remote 404 into a *domain.NotFoundError and passes
// other errors through.
func orderNotFound(orderID string, err error) error {
	var remote *domain.RemoteOperationError
	if errors.As(err, &remote) && remote.StatusCode == http.StatusNotFound {
		return &domain.NotFoundError{Entity: "order", ID: orderID, Err: err}
	}
	return err
}

func (s *Service) row(o domain.OrderResponse) Row {
	return Row{
		ID:           o.ID,
		Status:       o.Status,
		Total:        formatAmount(o.TotalAmount),
		DeliveryTime: s.deliveryTime(o),
	}
}

func (s *Service) deliveryTime(o domain.OrderResponse) string {
	if o.Type != domain.FulfillmentDelivery {
		return pickupLabel
	}
	if o.EstimatedDeliveryTime == nil {
		return unknownETALabel
	}
	return time.Unix(*o.EstimatedDeliveryTime, 0).In(s.loc).Format(time.RFC3339)
}

func formatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
