// Package catalog builds the storefront menu from the order API.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pizza-storefront/internal/domain"
)

const (
	customPizzaName        = "Custom Pizza"
	customPizzaDescription = "Create your own pizza with all your favorite toppings!"
)

// Source is the part of the order API the catalog reads from.
type Source interface {
	SpecialtyPizzas(ctx context.Context) ([]domain.PizzaDefinition, error)
	Pricing(ctx context.Context) (domain.PricingTable, error)
}

// Menu is a consistent snapshot of pizzas and the pricing table they were
// validated against. The custom pizza is always first.
type Menu struct {
	Pizzas   []domain.PizzaDefinition
	Pricing  domain.PricingTable
	LoadedAt time.Time
}

func (m *Menu) Pizza(id string) (domain.PizzaDefinition, bool) {
	for _, p := range m.Pizzas {
		if p.ID == id {
			return p, true
		}
	}
	return domain.PizzaDefinition{}, false
}

// ExtraToppings lists the toppings that can be added to p as priced extras,
// sorted by name.
func (m *Menu) ExtraToppings(p domain.PizzaDefinition) []domain.Topping {
	out := make([]domain.Topping, 0, len(m.Pricing.ToppingPrices))
	for name := range m.Pricing.ToppingPrices {
		t := domain.NormalizeTopping(string(name))
		if p.HasBaseTopping(t) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type Service struct {
	source Source
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu     sync.Mutex
	cached *Menu
}

func New(source Source, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source: source,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Load returns the cached menu while it is younger than the configured TTL,
// otherwise it refetches pizzas and pricing concurrently.
func (s *Service) Load(ctx context.Context) (*Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.ttl > 0 && s.now().Sub(s.cached.LoadedAt) < s.ttl {
		return s.cached, nil
	}

	var (
		specialty []domain.PizzaDefinition
		pricing   domain.PricingTable
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		specialty, err = s.source.SpecialtyPizzas(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		pricing, err = s.source.Pricing(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	menu := s.build(specialty, pricing)
	s.cached = menu
	s.logger.Info("catalog loaded", zap.Int("pizzas", len(menu.Pizzas)))
	return menu, nil
}

// Invalidate drops the cached menu.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// Pizza resolves a menu entry by id.
func (s *Service) Pizza(ctx context.Context, id string) (domain.PizzaDefinition, *Menu, error) {
	menu, err := s.Load(ctx)
	if err != nil {
		return domain.PizzaDefinition{}, nil, err
	}
	p, ok := menu.Pizza(id)
	if !ok {
		return domain.PizzaDefinition{}, nil, domain.ErrNotFound
	}
	return p, menu, nil
}

func (s *Service) build(specialty []domain.PizzaDefinition, pricing domain.PricingTable) *Menu {
	pizzas := make([]domain.PizzaDefinition, 0, len(specialty)+1)
	pizzas = append(pizzas, CustomPizza(pricing))
	for _, p := range specialty {
		if err := Validate(p, pricing); err != nil {
			s.logger.Warn("specialty pizza omitted from menu",
				zap.String("pizza_id", p.ID),
				zap.Error(err),
			)
			continue
		}
		p.Kind = domain.KindSpecialty
		pizzas = append(pizzas, p)
	}
	return &Menu{Pizzas: pizzas, Pricing: pricing, LoadedAt: s.now()}
}

// CustomPizza is the build-your-own entry priced straight from the size table.
func CustomPizza(pricing domain.PricingTable) domain.PizzaDefinition {
	return domain.PizzaDefinition{
		ID:           domain.CustomPizzaID,
		Name:         customPizzaName,
		Description:  customPizzaDescription,
		Group:        domain.GroupClassics,
		Kind:         domain.KindCustom,
		BaseToppings: domain.BaseToppings{},
		Price:        pricing.Size,
	}
}

// Validate checks that every size and base topping of p resolves in the
// pricing table.
func Validate(p domain.PizzaDefinition, pricing domain.PricingTable) error {
	for _, size := range domain.Sizes {
		if _, ok := p.Price[size]; !ok {
			return &domain.DataConsistencyError{Entity: "size price", Key: p.ID + "/" + string(size)}
		}
	}
	for _, t := range p.BaseToppings {
		if !pricing.HasTopping(t) {
			return &domain.DataConsistencyError{Entity: "topping", Key: string(t)}
		}
	}
	return nil
}
