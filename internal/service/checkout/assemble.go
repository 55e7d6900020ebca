package checkout

import (
	"sort"

	"pizza-storefront/internal/domain"
	"pizza-storefront/internal/pricing"
)

// Assemble turns cart lines and a validated form into the order API payload.
// Each item carries its extra toppings sorted by name, its removed base
// toppings as exclusions and pricePerUnit × quantity as its total. Base
// toppings that were kept are implied by the pizza and not listed.
func Assemble(items []domain.CartLineItem, form Form, locationID string) domain.OrderSubmission {
	form = form.trimmed()

	out := domain.OrderSubmission{
		LocationID: locationID,
		Items:      make([]domain.OrderItem, 0, len(items)),
		Customer: domain.Customer{
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Email:     form.Email,
		},
		PaymentMethod: form.PaymentMethod,
		Type:          form.Fulfillment,
	}
	if form.Fulfillment == domain.FulfillmentDelivery {
		out.Customer.DeliveryAddress = &domain.DeliveryAddress{
			Street:  form.Street,
			City:    form.City,
			State:   form.State,
			ZipCode: form.ZipCode,
		}
	}
	if form.PaymentMethod == domain.PaymentCreditCard {
		out.CreditCardNumber = form.CardNumber
	}

	for _, item := range items {
		out.Items = append(out.Items, domain.OrderItem{
			ID: item.ID,
			Pizza: domain.PizzaSpec{
				Type:              item.Kind,
				Size:              item.Size,
				Toppings:          extras(item.ExtraToppings),
				ToppingExclusions: append([]domain.Topping{}, item.RemovedToppings...),
				Quantity:          item.Quantity,
				TotalPrice:        item.LineTotal().InexactFloat64(),
			},
		})
	}
	out.TotalAmount = pricing.Round2(domain.Cart{Items: items}.Total()).InexactFloat64()
	return out
}

func extras(in map[domain.Topping]domain.ToppingTier) []domain.ToppingChoice {
	out := make([]domain.ToppingChoice, 0, len(in))
	for name, tier := range in {
		if tier == domain.TierNone || tier == "" {
			continue
		}
		out = append(out, domain.ToppingChoice{Name: name, Quantity: tier})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
