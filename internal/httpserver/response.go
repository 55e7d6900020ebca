package httpserver

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"pizza-storefront/internal/domain"
	"pizza-storefront/internal/pricing"
	"pizza-storefront/internal/service/catalog"
)

type pizzaView struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Group         domain.PizzaGroup      `json:"group"`
	Type          domain.PizzaKind       `json:"type"`
	Toppings      []domain.Topping       `json:"toppings"`
	Price         map[domain.Size]string `json:"price"`
	ExtraToppings []domain.Topping       `json:"extraToppings"`
}

type menuView struct {
	Pizzas        []pizzaView                                      `json:"pizzas"`
	Sizes         []domain.Size                                    `json:"sizes"`
	Tiers         []domain.ToppingTier                             `json:"tiers"`
	ToppingPrices map[domain.Topping]map[domain.ToppingTier]string `json:"toppingPrices"`
}

type lineItemView struct {
	ID              string                 `json:"id"`
	PizzaID         string                 `json:"pizzaId"`
	Name            string                 `json:"name"`
	Size            domain.Size            `json:"size"`
	Type            domain.PizzaKind       `json:"type"`
	DefaultToppings []domain.Topping       `json:"defaultToppings"`
	RemovedToppings []domain.Topping       `json:"removedToppings"`
	ExtraToppings   []domain.ToppingChoice `json:"extraToppings"`
	Quantity        int                    `json:"quantity"`
	PricePerUnit    string                 `json:"pricePerUnit"`
	LineTotal       string                 `json:"lineTotal"`
	AddedAt         time.Time              `json:"addedAt"`
}

type cartView struct {
	Items     []lineItemView `json:"items"`
	ItemCount int            `json:"itemCount"`
	Total     string         `json:"total"`
}

type quoteView struct {
	Total        string `json:"total"`
	PricePerUnit string `json:"pricePerUnit"`
}

func money(v decimal.Decimal) string {
	return pricing.Format(pricing.Round2(v))
}

func toMenuView(m *catalog.Menu) menuView {
	out := menuView{
		Pizzas:        make([]pizzaView, 0, len(m.Pizzas)),
		Sizes:         domain.Sizes,
		Tiers:         []domain.ToppingTier{domain.TierLight, domain.TierRegular, domain.TierExtra},
		ToppingPrices: make(map[domain.Topping]map[domain.ToppingTier]string, len(m.Pricing.ToppingPrices)),
	}
	for _, p := range m.Pizzas {
		price := make(map[domain.Size]string, len(p.Price))
		for size, amount := range p.Price {
			price[size] = money(amount)
		}
		toppings := append([]domain.Topping{}, p.BaseToppings...)
		out.Pizzas = append(out.Pizzas, pizzaView{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			Group:         p.Group,
			Type:          p.Kind,
			Toppings:      toppings,
			Price:         price,
			ExtraToppings: m.ExtraToppings(p),
		})
	}
	for name, tiers := range m.Pricing.ToppingPrices {
		t := domain.NormalizeTopping(string(name))
		out.ToppingPrices[t] = make(map[domain.ToppingTier]string, len(tiers))
		for tier, amount := range tiers {
			out.ToppingPrices[t][tier] = money(amount)
		}
	}
	return out
}

func toCartView(c domain.Cart) cartView {
	out := cartView{
		Items: make([]lineItemView, 0, len(c.Items)),
		Total: money(c.Total()),
	}
	for _, item := range c.Items {
		out.Items = append(out.Items, toLineItemView(item))
		out.ItemCount += item.Quantity
	}
	return out
}

func toLineItemView(item domain.CartLineItem) lineItemView {
	extras := make([]domain.ToppingChoice, 0, len(item.ExtraToppings))
	for name, tier := range item.ExtraToppings {
		extras = append(extras, domain.ToppingChoice{Name: name, Quantity: tier})
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i].Name < extras[j].Name })

	return lineItemView{
		ID:              item.ID,
		PizzaID:         item.PizzaID,
		Name:            item.Name,
		Size:            item.Size,
		Type:            item.Kind,
		DefaultToppings: nonNil(item.DefaultToppings),
		RemovedToppings: nonNil(item.RemovedToppings),
		ExtraToppings:   extras,
		Quantity:        item.Quantity,
		PricePerUnit:    money(item.PricePerUnit),
		LineTotal:       money(item.LineTotal()),
		AddedAt:         item.AddedAt,
	}
}

func nonNil(in []domain.Topping) []domain.Topping {
	if in == nil {
		return []domain.Topping{}
	}
	return in
}
