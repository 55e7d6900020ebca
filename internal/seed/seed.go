// Package seed holds the demo menu served by the local order API stand-in.
package seed

import (
	"github.com/shopspring/decimal"

	"pizza-storefront/internal/domain"
)

type pizzaSeed struct {
	ID          string
	Name        string
	Group       domain.PizzaGroup
	Description string
	Toppings    []domain.Topping
	Small       string
	Medium      string
	Large       string
}

type toppingSeed struct {
	Topping domain.Topping
	Light   string
	Regular string
	Extra   string
}

var pizzas = []pizzaSeed{
	{
		ID:          "meat-feast",
		Name:        "Meat Feast",
		Group:       domain.GroupMeatLovers,
		Description: "Pepperoni, sausage, bacon and ham on our classic crust",
		Toppings:    []domain.Topping{domain.Pepperoni, domain.Sausage, domain.Bacon, domain.Ham},
		Small:       "12.99",
		Medium:      "15.99",
		Large:       "18.99",
	},
	{
		ID:          "garden-party",
		Name:        "Garden Party",
		Group:       domain.GroupVeggieLovers,
		Description: "Mushrooms, onions, green peppers and black olives",
		Toppings:    []domain.Topping{domain.Mushrooms, domain.Onions, domain.GreenPeppers, domain.BlackOlives},
		Small:       "11.49",
		Medium:      "14.49",
		Large:       "17.49",
	},
	{
		ID:          "hawaiian",
		Name:        "Hawaiian",
		Group:       domain.GroupClassics,
		Description: "Ham and pineapple",
		Toppings:    []domain.Topping{domain.Ham, domain.Pineapple},
		Small:       "11.99",
		Medium:      "14.99",
		Large:       "17.99",
	},
	{
		ID:          "smokehouse",
		Name:        "Smokehouse",
		Group:       domain.GroupNewRecipes,
		Description: "Bacon, onions and extra cheese",
		Toppings:    []domain.Topping{domain.Bacon, domain.Onions, domain.ExtraCheese},
		Small:       "12.49",
		Medium:      "15.49",
		Large:       "18.49",
	},
}

var toppings = []toppingSeed{
	{Topping: domain.Pepperoni, Light: "1.00", Regular: "1.50", Extra: "2.50"},
	{Topping: domain.Mushrooms, Light: "0.50", Regular: "0.75", Extra: "1.25"},
	{Topping: domain.Onions, Light: "0.40", Regular: "0.60", Extra: "1.00"},
	{Topping: domain.Sausage, Light: "1.00", Regular: "1.50", Extra: "2.25"},
	{Topping: domain.Bacon, Light: "1.10", Regular: "1.60", Extra: "2.40"},
	{Topping: domain.ExtraCheese, Light: "0.60", Regular: "0.90", Extra: "1.40"},
	{Topping: domain.BlackOlives, Light: "0.50", Regular: "0.75", Extra: "1.10"},
	{Topping: domain.GreenPeppers, Light: "0.45", Regular: "0.70", Extra: "1.05"},
	{Topping: domain.Pineapple, Light: "0.55", Regular: "0.80", Extra: "1.20"},
	{Topping: domain.Ham, Light: "1.00", Regular: "1.25", Extra: "2.00"},
}

// SpecialtyPizzas returns the demo specialty menu.
func SpecialtyPizzas() []domain.PizzaDefinition {
	out := make([]domain.PizzaDefinition, 0, len(pizzas))
	for _, p := range pizzas {
		out = append(out, domain.PizzaDefinition{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Group:        p.Group,
			Kind:         domain.KindSpecialty,
			BaseToppings: append(domain.BaseToppings(nil), p.Toppings...),
			Price: map[domain.Size]decimal.Decimal{
				domain.SizeSmall:  decimal.RequireFromString(p.Small),
				domain.SizeMedium: decimal.RequireFromString(p.Medium),
				domain.SizeLarge:  decimal.RequireFromString(p.Large),
			},
		})
	}
	return out
}

// Pricing returns the demo pricing table.
func Pricing() domain.PricingTable {
	table := domain.PricingTable{
		Size: map[domain.Size]decimal.Decimal{
			domain.SizeSmall:  decimal.RequireFromString("8.00"),
			domain.SizeMedium: decimal.RequireFromString("10.00"),
			domain.SizeLarge:  decimal.RequireFromString("12.00"),
		},
		ToppingPrices: make(map[domain.Topping]map[domain.ToppingTier]decimal.Decimal, len(toppings)),
	}
	for _, t := range toppings {
		table.ToppingPrices[t.Topping] = map[domain.ToppingTier]decimal.Decimal{
			domain.TierLight:   decimal.RequireFromString(t.Light),
			domain.TierRegular: decimal.RequireFromString(t.Regular),
			domain.TierExtra:   decimal.RequireFromString(t.Extra),
		}
	}
	return table
}
