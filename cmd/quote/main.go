package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"pizza-storefront/internal/apiclient"
	"pizza-storefront/internal/config"
	"pizza-storefront/internal/domain"
	"pizza-storefront/internal/pricing"
	"pizza-storefront/internal/service/catalog"
)

type listFlag []string

func (l *listFlag) String() string     { return strings.Join(*l, ",") }
func (l *listFlag) Set(v string) error { *l = append(*l, v); return nil }

func main() {
	var (
		pizzaID  string
		size     string
		quantity int
		toppings listFlag
	)
	flag.StringVar(&pizzaID, "pizza", domain.CustomPizzaID, "Pizza id from the menu")
	flag.StringVar(&size, "size", string(domain.SizeMedium), "small, medium or large")
	flag.IntVar(&quantity, "qty", 1, "Number of pizzas")
	flag.Var(&toppings, "topping", "Topping as name=tier (light, regular, extra); repeatable")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	client := apiclient.New(cfg.Remote.BaseURL, cfg.Remote.Timeout, zap.NewNop())
	menu, err := catalog.New(client, 0, zap.NewNop()).Load(ctx)
	if err != nil {
		log.Fatalf("load menu: %v", err)
	}

	pizza, ok := menu.Pizza(pizzaID)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown pizza %q\n", pizzaID)
		os.Exit(2)
	}

	parsedSize, err := domain.ParseSize(size)
	if err != nil {
		log.Fatalf("size: %v", err)
	}

	// base toppings are part of the pizza price, so only extras are listed
	choices := make(map[domain.Topping]domain.ToppingTier, len(toppings))
	for _, raw := range toppings {
		name, rawTier, found := strings.Cut(raw, "=")
		if !found {
			rawTier = string(domain.TierRegular)
		}
		tier, err := domain.ParseTier(strings.TrimSpace(rawTier))
		if err != nil {
			log.Fatalf("topping %q: %v", name, err)
		}
		choices[domain.NormalizeTopping(name)] = tier
	}

	quote, err := pricing.Price(menu.Pricing, pizza, parsedSize, choices, quantity)
	if err != nil {
		log.Fatalf("price: %v", err)
	}

	fmt.Printf("%s (%s) x%d\n", pizza.Name, size, quantity)
	fmt.Printf("  per pizza: $%s\n", pricing.Format(quote.PricePerUnit))
	fmt.Printf("  total:     $%s\n", pricing.Format(quote.Total))
}
