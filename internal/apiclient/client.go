// Package apiclient talks to the remote order-management API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"pizza-storefront/internal/domain"
)

// Client is a JSON-over-HTTPS client for the order API. Every non-2xx
// response is reported as a *domain.RemoteOperationError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type specialtyPizzasResponse struct {
	SpecialtyPizzas []domain.PizzaDefinition `json:"specialtyPizzas"`
}

type orderEnvelope struct {
	Order domain.OrderResponse `json:"order"`
}

type ordersEnvelope struct {
	Orders []domain.OrderResponse `json:"orders"`
}

type statusRequest struct {
	OrderID string             `json:"orderId"`
	Status  domain.OrderStatus `json:"status"`
}

type cancelRequest struct {
	OrderID string `json:"orderId"`
}

// SpecialtyPizzas returns the specialty menu. Kind is set to specialty since
// the API does not send it.
func (c *Client) SpecialtyPizzas(ctx context.Context) ([]domain.PizzaDefinition, error) {
	var out specialtyPizzasResponse
	if err := c.do(ctx, "list specialty pizzas", http.MethodGet, "/specialty-pizzas", nil, nil, &out); err != nil {
		return nil, err
	}
	for i := range out.SpecialtyPizzas {
		out.SpecialtyPizzas[i].Kind = domain.KindSpecialty
	}
	return out.SpecialtyPizzas, nil
}

func (c *Client) Pricing(ctx context.Context) (domain.PricingTable, error) {
	var out domain.PricingTable
	if err := c.do(ctx, "get pricing", http.MethodGet, "/pizza-pricing", nil, nil, &out); err != nil {
		return domain.PricingTable{}, err
	}
	return out, nil
}

func (c *Client) CreateOrder(ctx context.Context, order domain.OrderSubmission) (*domain.OrderResponse, error) {
	var out orderEnvelope
	if err := c.do(ctx, "create order", http.MethodPost, "/pizza", nil, order, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

func (c *Client) Orders(ctx context.Context, locationID string) ([]domain.OrderResponse, error) {
	var out ordersEnvelope
	q := url.Values{"locationId": {locationID}}
	if err := c.do(ctx, "list orders", http.MethodGet, "/pizzas", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *Client) Order(ctx context.Context, orderID string) (*domain.OrderResponse, error) {
	var out orderEnvelope
	q := url.Values{"orderId": {orderID}}
	if err := c.do(ctx, "get order", http.MethodGet, "/pizza", q, nil, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

func (c *Client) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.OrderResponse, error) {
	var out orderEnvelope
	body := statusRequest{OrderID: orderID, Status: status}
	if err := c.do(ctx, "update order status", http.MethodPut, "/pizza/status", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) (*domain.OrderResponse, error) {
	var out orderEnvelope
	if err := c.do(ctx, "cancel order", http.MethodPost, "/pizza/cancel", nil, cancelRequest{OrderID: orderID}, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

// Ping checks that the pricing endpoint answers; used by readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, "ping", http.MethodGet, "/pizza-pricing", nil, nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &domain.RemoteOperationError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &domain.RemoteOperationError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("remote call failed", zap.String("op", op), zap.Error(err))
		return &domain.RemoteOperationError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("remote call",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &domain.RemoteOperationError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", strings.TrimSpace(string(msg))),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.RemoteOperationError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
