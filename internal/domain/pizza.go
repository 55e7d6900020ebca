package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Sizes lists the sizes in menu order.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge}

func ParseSize(v string) (Size, error) {
	switch s := Size(strings.ToLower(strings.TrimSpace(v))); s {
	case SizeSmall, SizeMedium, SizeLarge:
		return s, nil
	default:
		return "", fmt.Errorf("unknown pizza size %q", v)
	}
}

// ToppingTier is the intensity a topping is ordered at. TierNone is the
// absence of a tier and is never priced or stored.
type ToppingTier string

const (
	TierNone    ToppingTier = "none"
	TierLight   ToppingTier = "light"
	TierRegular ToppingTier = "regular"
	TierExtra   ToppingTier = "extra"
)

func ParseTier(v string) (ToppingTier, error) {
	switch t := ToppingTier(strings.ToLower(strings.TrimSpace(v))); t {
	case "", TierNone:
		return TierNone, nil
	case TierLight, TierRegular, TierExtra:
		return t, nil
	default:
		return "", fmt.Errorf("unknown topping tier %q", v)
	}
}

type Topping string

const (
	Pepperoni    Topping = "pepperoni"
	Mushrooms    Topping = "mushrooms"
	Onions       Topping = "onions"
	Sausage      Topping = "sausage"
	Bacon        Topping = "bacon"
	ExtraCheese  Topping = "extra cheese"
	BlackOlives  Topping = "black olives"
	GreenPeppers Topping = "green peppers"
	Pineapple    Topping = "pineapple"
	Ham          Topping = "ham"
)

// NormalizeTopping folds case, treats underscores as spaces and collapses
// runs of whitespace so "Extra_Cheese" and "extra  cheese" compare equal.
func NormalizeTopping(v string) Topping {
	v = strings.ReplaceAll(strings.ToLower(v), "_", " ")
	return Topping(strings.Join(strings.Fields(v), " "))
}

type PizzaKind string

const (
	KindSpecialty PizzaKind = "specialty"
	KindCustom    PizzaKind = "custom"
)

type PizzaGroup string

const (
	GroupMeatLovers   PizzaGroup = "meat lovers"
	GroupVeggieLovers PizzaGroup = "veggie lovers"
	GroupNewRecipes   PizzaGroup = "new recipes"
	GroupClassics     PizzaGroup = "classics"
)

// CustomPizzaID identifies the synthetic build-your-own entry of the menu.
const CustomPizzaID = "custom"

type PizzaDefinition struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	Description  string                   `json:"description"`
	Group        PizzaGroup               `json:"group"`
	Kind         PizzaKind                `json:"type"`
	BaseToppings BaseToppings             `json:"toppings"`
	Price        map[Size]decimal.Decimal `json:"price"`
}

// HasBaseTopping reports whether t ships with the pizza by default.
func (p PizzaDefinition) HasBaseTopping(t Topping) bool {
	n := NormalizeTopping(string(t))
	for _, b := range p.BaseToppings {
		if NormalizeTopping(string(b)) == n {
			return true
		}
	}
	return false
}

// BaseToppings accepts both plain topping names and {name, quantity}
// objects on decode; the remote API has served both shapes.
type BaseToppings []Topping

func (b *BaseToppings) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(BaseToppings, 0, len(raw))
	for _, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			out = append(out, NormalizeTopping(name))
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return fmt.Errorf("decode topping: %w", err)
		}
		out = append(out, NormalizeTopping(obj.Name))
	}
	*b = out
	return nil
}

type PricingTable struct {
	Size          map[Size]decimal.Decimal                    `json:"size"`
	ToppingPrices map[Topping]map[ToppingTier]decimal.Decimal `json:"toppingPrices"`
}

// ToppingPrice looks a topping up by its normalized name.
func (p PricingTable) ToppingPrice(t Topping, tier ToppingTier) (decimal.Decimal, bool) {
	n := NormalizeTopping(string(t))
	for name, tiers := range p.ToppingPrices {
		if NormalizeTopping(string(name)) != n {
			continue
		}
		price, ok := tiers[tier]
		return price, ok
	}
	return decimal.Zero, false
}

// HasTopping reports whether t resolves in the topping price table.
func (p PricingTable) HasTopping(t Topping) bool {
	n := NormalizeTopping(string(t))
	for name := range p.ToppingPrices {
		if NormalizeTopping(string(name)) == n {
			return true
		}
	}
	return false
}
