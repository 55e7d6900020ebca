package catalog

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"pizza-storefront/internal/domain"
	"pizza-storefront/internal/seed"
)

type stubSource struct {
	pizzas     []domain.PizzaDefinition
	pricing    domain.PricingTable
	pizzasErr  error
	pricingErr error
	calls      atomic.Int32
}

func (s *stubSource) SpecialtyPizzas(_ context.Context) ([]domain.PizzaDefinition, error) {
	s.calls.Add(1)
	return s.pizzas, s.pizzasErr
}

func (s *stubSource) Pricing(_ context.Context) (domain.PricingTable, error) {
	return s.pricing, s.pricingErr
}

func TestLoadPutsCustomPizzaFirst(t *testing.T) {
	src := &stubSource{pizzas: seed.SpecialtyPizzas(), pricing: seed.Pricing()}
	svc := New(src, time.Minute, nil)

	menu, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, menu.Pizzas, len(src.pizzas)+1)

	custom := menu.Pizzas[0]
	assert.Equal(t, domain.CustomPizzaID, custom.ID)
	assert.Equal(t, "Custom Pizza", custom.Name)
	assert.Equal(t, domain.KindCustom, custom.Kind)
	assert.Equal(t, domain.GroupClassics, custom.Group)
	assert.Empty(t, custom.BaseToppings)
	assert.True(t, custom.Price[domain.SizeMedium].Equal(decimal.NewFromInt(10)))
	for _, p := range menu.Pizzas[1:] {
		assert.Equal(t, domain.KindSpecialty, p.Kind)
	}
}

func TestLoadOmitsInconsistentPizzas(t *testing.T) {
	pizzas := seed.SpecialtyPizzas()
	broken := pizzas[0]
	broken.ID = "anchovy-special"
	broken.BaseToppings = domain.BaseToppings{"anchovies"}
	noLarge := pizzas[1]
	noLarge.ID = "no-large"
	noLarge.Price = map[domain.Size]decimal.Decimal{
		domain.SizeSmall:  decimal.NewFromInt(9),
		domain.SizeMedium: decimal.NewFromInt(11),
	}

	core, logs := observer.New(zap.WarnLevel)
	src := &stubSource{pizzas: append(pizzas, broken, noLarge), pricing: seed.Pricing()}
	svc := New(src, time.Minute, zap.New(core))

	menu, err := svc.Load(context.Background())
	require.NoError(t, err)
	_, ok := menu.Pizza("anchovy-special")
	assert.False(t, ok)
	_, ok = menu.Pizza("no-large")
	assert.False(t, ok)
	assert.Len(t, menu.Pizzas, len(pizzas)+1)
	assert.Equal(t, 2, logs.FilterMessage("specialty pizza omitted from menu").Len())
}

func TestLoadCachesUntilTTL(t *testing.T) {
	src := &stubSource{pizzas: seed.SpecialtyPizzas(), pricing: seed.Pricing()}
	svc := New(src, time.Minute, nil)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.Load(context.Background())
	require.NoError(t, err)
	_, err = svc.Load(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, src.calls.Load())

	now = now.Add(2 * time.Minute)
	_, err = svc.Load(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, src.calls.Load())

	svc.Invalidate()
	_, err = svc.Load(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, src.calls.Load())
}

func TestLoadPropagatesRemoteFailure(t *testing.T) {
	remote := &domain.RemoteOperationError{Op: "get pricing", StatusCode: 503}
	src := &stubSource{pizzas: seed.SpecialtyPizzas(), pricingErr: remote}
	svc := New(src, time.Minute, nil)

	_, err := svc.Load(context.Background())
	var got *domain.RemoteOperationError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, 503, got.StatusCode)
}

func TestPizzaNotFound(t *testing.T) {
	src := &stubSource{pizzas: seed.SpecialtyPizzas(), pricing: seed.Pricing()}
	svc := New(src, time.Minute, nil)

	_, _, err := svc.Pizza(context.Background(), "calzone")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, menu, err := svc.Pizza(context.Background(), "hawaiian")
	require.NoError(t, err)
	assert.Equal(t, "Hawaiian", p.Name)
	assert.NotNil(t, menu)
}

func TestExtraToppingsExcludeBase(t *testing.T) {
	src := &stubSource{pizzas: seed.SpecialtyPizzas(), pricing: seed.Pricing()}
	svc := New(src, time.Minute, nil)
	menu, err := svc.Load(context.Background())
	require.NoError(t, err)

	hawaiian, ok := menu.Pizza("hawaiian")
	require.True(t, ok)
	extras := menu.ExtraToppings(hawaiian)
	assert.NotContains(t, extras, domain.Ham)
	assert.NotContains(t, extras, domain.Pineapple)
	assert.Contains(t, extras, domain.ExtraCheese)
	assert.True(t, sort.SliceIsSorted(extras, func(i, j int) bool { return extras[i] < extras[j] }))

	custom, _ := menu.Pizza(domain.CustomPizzaID)
	assert.Len(t, menu.ExtraToppings(custom), len(menu.Pricing.ToppingPrices))
}
