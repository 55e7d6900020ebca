// Package pricing computes line prices for pizza selections.
package pricing

import (
	"github.com/shopspring/decimal"

	"pizza-storefront/internal/domain"
)

// Quote is the priced result for one selection. Total is rounded to cents;
// PricePerUnit is derived from that rounded total and keeps full precision.
type Quote struct {
	Total        decimal.Decimal
	PricePerUnit decimal.Decimal
}

// Price starts from the pizza's price for size, adds the tier price of every
// chosen topping that is not one of the pizza's base toppings, multiplies by
// quantity and rounds the result to cents. The unit price is then back-derived
// as total / quantity, so unit × quantity may differ from Total in the last
// digit when quantity does not divide evenly.
func Price(table domain.PricingTable, pizza domain.PizzaDefinition, size domain.Size, choices map[domain.Topping]domain.ToppingTier, quantity int) (Quote, error) {
	if quantity < 1 {
		return Quote{}, domain.NewValidationError("quantity must be positive")
	}
	base, ok := pizza.Price[size]
	if !ok {
		return Quote{}, &domain.DataConsistencyError{Entity: "size price", Key: pizza.ID + "/" + string(size)}
	}

	subtotal := base
	for topping, tier := range choices {
		if tier == domain.TierNone || tier == "" {
			continue
		}
		if pizza.HasBaseTopping(topping) {
			continue
		}
		price, ok := table.ToppingPrice(topping, tier)
		if !ok {
			return Quote{}, &domain.DataConsistencyError{Entity: "topping price", Key: string(topping) + "/" + string(tier)}
		}
		subtotal = subtotal.Add(price)
	}

	qty := decimal.NewFromInt(int64(quantity))
	total := Round2(subtotal.Mul(qty))
	return Quote{
		Total:        total,
		PricePerUnit: total.Div(qty),
	}, nil
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// Format renders an amount with exactly two decimals for display.
func Format(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// Sum adds amounts without intermediate rounding.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
