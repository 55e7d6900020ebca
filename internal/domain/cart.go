package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemSelection is a customised pizza as chosen by the customer,
// before it is priced and stored in the cart.
type LineItemSelection struct {
	PizzaID  string                  `json:"pizzaId"`
	Size     Size                    `json:"size"`
	Excluded []Topping               `json:"excludedToppings,omitempty"`
	Toppings map[Topping]ToppingTier `json:"toppings,omitempty"`
	Quantity int                     `json:"quantity"`
}

type CartLineItem struct {
	ID              string                  `json:"id"`
	PizzaID         string                  `json:"pizzaId"`
	Name            string                  `json:"name"`
	Size            Size                    `json:"size"`
	Kind            PizzaKind               `json:"type"`
	DefaultToppings []Topping               `json:"defaultToppings"`
	RemovedToppings []Topping               `json:"removedToppings"`
	ExtraToppings   map[Topping]ToppingTier `json:"extraToppings"`
	Quantity        int                     `json:"quantity"`
	PricePerUnit    decimal.Decimal         `json:"pricePerUnit"`
	AddedAt         time.Time               `json:"addedAt"`
}

// LineTotal is the unrounded pricePerUnit × quantity.
func (l CartLineItem) LineTotal() decimal.Decimal {
	return l.PricePerUnit.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the ordered list of line items held for one session.
type Cart struct {
	Items []CartLineItem `json:"items"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total sums every line without intermediate rounding.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}
