package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizza-storefront/internal/domain"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func testTable() domain.PricingTable {
	return domain.PricingTable{
		Size: map[domain.Size]decimal.Decimal{
			domain.SizeSmall:  dec("8.00"),
			domain.SizeMedium: dec("10.00"),
			domain.SizeLarge:  dec("12.00"),
		},
		ToppingPrices: map[domain.Topping]map[domain.ToppingTier]decimal.Decimal{
			"pepperoni":    {domain.TierLight: dec("1.00"), domain.TierRegular: dec("1.50"), domain.TierExtra: dec("2.50")},
			"mushrooms":    {domain.TierLight: dec("0.50"), domain.TierRegular: dec("0.75"), domain.TierExtra: dec("1.25")},
			"ham":          {domain.TierLight: dec("1.00"), domain.TierRegular: dec("1.25"), domain.TierExtra: dec("2.00")},
			"extra_cheese": {domain.TierLight: dec("0.60"), domain.TierRegular: dec("0.90"), domain.TierExtra: dec("1.40")},
		},
	}
}

func customPizza(table domain.PricingTable) domain.PizzaDefinition {
	return domain.PizzaDefinition{
		ID:    domain.CustomPizzaID,
		Name:  "Custom Pizza",
		Kind:  domain.KindCustom,
		Price: table.Size,
	}
}

func hawaiian() domain.PizzaDefinition {
	return domain.PizzaDefinition{
		ID:           "hawaiian",
		Name:         "Hawaiian",
		Kind:         domain.KindSpecialty,
		BaseToppings: domain.BaseToppings{"ham", "pineapple"},
		Price: map[domain.Size]decimal.Decimal{
			domain.SizeSmall:  dec("11.99"),
			domain.SizeMedium: dec("14.99"),
			domain.SizeLarge:  dec("17.99"),
		},
	}
}

func TestPrice_CustomWithExtraTopping(t *testing.T) {
	table := testTable()
	q, err := Price(table, customPizza(table), domain.SizeMedium, map[domain.Topping]domain.ToppingTier{
		domain.Pepperoni: domain.TierExtra,
	}, 2)
	require.NoError(t, err)
	assert.Equal(t, "25.00", Format(q.Total))
	assert.True(t, q.PricePerUnit.Equal(dec("12.50")), "unit price %s", q.PricePerUnit)
}

func TestPrice_SpecialtyExclusionDoesNotChangePrice(t *testing.T) {
	q, err := Price(testTable(), hawaiian(), domain.SizeLarge, nil, 1)
	require.NoError(t, err)
	assert.True(t, q.Total.Equal(dec("17.99")))
	assert.True(t, q.PricePerUnit.Equal(q.Total))
}

func TestPrice_BaseToppingsAreNeverCharged(t *testing.T) {
	q, err := Price(testTable(), hawaiian(), domain.SizeSmall, map[domain.Topping]domain.ToppingTier{
		"Ham": domain.TierExtra,
	}, 1)
	require.NoError(t, err)
	assert.True(t, q.Total.Equal(dec("11.99")))
}

func TestPrice_TierNoneContributesNothing(t *testing.T) {
	table := testTable()
	q, err := Price(table, customPizza(table), domain.SizeSmall, map[domain.Topping]domain.ToppingTier{
		domain.Mushrooms: domain.TierNone,
	}, 1)
	require.NoError(t, err)
	assert.True(t, q.Total.Equal(dec("8.00")))
}

func TestPrice_NormalizesToppingNames(t *testing.T) {
	table := testTable()
	q, err := Price(table, customPizza(table), domain.SizeSmall, map[domain.Topping]domain.ToppingTier{
		domain.ExtraCheese: domain.TierRegular,
	}, 1)
	require.NoError(t, err)
	assert.True(t, q.Total.Equal(dec("8.90")))
}

func TestPrice_UnknownToppingFailsFast(t *testing.T) {
	table := testTable()
	_, err := Price(table, customPizza(table), domain.SizeSmall, map[domain.Topping]domain.ToppingTier{
		domain.Bacon: domain.TierLight,
	}, 1)
	var dce *domain.DataConsistencyError
	require.True(t, errors.As(err, &dce), "expected data consistency error, got %v", err)
	assert.Equal(t, "topping price", dce.Entity)
}

func TestPrice_MissingSizeFailsFast(t *testing.T) {
	pizza := hawaiian()
	delete(pizza.Price, domain.SizeLarge)
	_, err := Price(testTable(), pizza, domain.SizeLarge, nil, 1)
	var dce *domain.DataConsistencyError
	require.True(t, errors.As(err, &dce))
}

func TestPrice_RejectsNonPositiveQuantity(t *testing.T) {
	table := testTable()
	for _, qty := range []int{0, -3} {
		_, err := Price(table, customPizza(table), domain.SizeSmall, nil, qty)
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve), "quantity %d: expected validation error, got %v", qty, err)
	}
}

func TestPrice_UnitPriceDerivedFromRoundedTotal(t *testing.T) {
	pizza := domain.PizzaDefinition{
		ID:    "odd",
		Price: map[domain.Size]decimal.Decimal{domain.SizeSmall: dec("3.333")},
	}
	q, err := Price(testTable(), pizza, domain.SizeSmall, nil, 3)
	require.NoError(t, err)
	// 3.333 × 3 = 9.999 → 10.00, unit price back-derived from the rounded total.
	assert.Equal(t, "10.00", Format(q.Total))
	assert.True(t, q.PricePerUnit.Equal(dec("10").Div(dec("3"))))
	assert.Equal(t, "10.00", Format(Round2(q.PricePerUnit.Mul(dec("3")))))
}

func TestPrice_QuantityOneUnitEqualsTotal(t *testing.T) {
	table := testTable()
	q, err := Price(table, customPizza(table), domain.SizeLarge, map[domain.Topping]domain.ToppingTier{
		domain.Pepperoni: domain.TierLight,
		domain.Mushrooms: domain.TierRegular,
	}, 1)
	require.NoError(t, err)
	assert.True(t, q.PricePerUnit.Equal(q.Total))
	assert.Equal(t, "13.75", Format(q.Total))
}

func TestPrice_MonotonicInQuantityAndTier(t *testing.T) {
	table := testTable()
	pizza := customPizza(table)
	tiers := []domain.ToppingTier{domain.TierNone, domain.TierLight, domain.TierRegular, domain.TierExtra}

	prevTier := decimal.Zero
	for _, tier := range tiers {
		prevQty := decimal.Zero
		for qty := 1; qty <= 5; qty++ {
			q, err := Price(table, pizza, domain.SizeMedium, map[domain.Topping]domain.ToppingTier{domain.Pepperoni: tier}, qty)
			require.NoError(t, err)
			floor := pizza.Price[domain.SizeMedium].Mul(decimal.NewFromInt(int64(qty)))
			assert.True(t, q.Total.GreaterThanOrEqual(floor))
			assert.True(t, q.Total.GreaterThanOrEqual(prevQty))
			prevQty = q.Total
		}
		q, err := Price(table, pizza, domain.SizeMedium, map[domain.Topping]domain.ToppingTier{domain.Pepperoni: tier}, 1)
		require.NoError(t, err)
		assert.True(t, q.Total.GreaterThanOrEqual(prevTier), "tier %s", tier)
		prevTier = q.Total
	}
}
