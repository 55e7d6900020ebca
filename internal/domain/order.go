package domain

import (
	"fmt"
	"strings"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled}

func ParseOrderStatus(v string) (OrderStatus, error) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(v)))
	for _, known := range OrderStatuses {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", v)
}

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentCash       PaymentMethod = "cash"
)

type FulfillmentType string

const (
	FulfillmentPickup   FulfillmentType = "pickup"
	FulfillmentDelivery FulfillmentType = "delivery"
)

type ToppingChoice struct {
	Name     Topping     `json:"name"`
	Quantity ToppingTier `json:"quantity"`
}

// PizzaSpec is one priced pizza as the order API receives it. TotalPrice is
// computed by the storefront and sent verbatim.
type PizzaSpec struct {
	Type              PizzaKind       `json:"type"`
	Size              Size            `json:"size"`
	Toppings          []ToppingChoice `json:"toppings"`
	ToppingExclusions []Topping       `json:"toppingExclusions"`
	Quantity          int             `json:"quantity"`
	TotalPrice        float64         `json:"totalPrice"`
}

type OrderItem struct {
	ID    string    `json:"id"`
	Pizza PizzaSpec `json:"pizza"`
}

type OrderSubmission struct {
	LocationID       string          `json:"locationId"`
	Items            []OrderItem     `json:"items"`
	Customer         Customer        `json:"customer"`
	TotalAmount      float64         `json:"totalAmount"`
	PaymentMethod    PaymentMethod   `json:"paymentMethod"`
	CreditCardNumber string          `json:"creditCardNumber,omitempty"`
	Type             FulfillmentType `json:"type"`
}

// OrderResponse is an order as stored by the order API. Timestamps are unix
// seconds.
type OrderResponse struct {
	OrderSubmission
	ID                    string      `json:"id"`
	Status                OrderStatus `json:"status"`
	CreatedAt             int64       `json:"createdAt"`
	UpdatedAt             int64       `json:"updatedAt"`
	EstimatedDeliveryTime *int64      `json:"estimatedDeliveryTime,omitempty"`
}
