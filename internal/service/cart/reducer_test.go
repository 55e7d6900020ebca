package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"pizza-storefront/internal/domain"
)

func line(id string, ppu string, qty int) domain.CartLineItem {
	return domain.CartLineItem{ID: id, PizzaID: "custom", PricePerUnit: decimal.RequireFromString(ppu), Quantity: qty}
}

func TestReduce_AddNeverMerges(t *testing.T) {
	state := domain.Cart{}
	item := line("custom-1", "10.00", 1)
	state, _ = Reduce(state, AddItem{Item: item})
	item.ID = "custom-2"
	state, _ = Reduce(state, AddItem{Item: item})
	if len(state.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(state.Items))
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	state := domain.Cart{Items: []domain.CartLineItem{line("a", "10", 2)}}
	next, err := Reduce(state, SetQuantity{ID: "a", Quantity: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Items[0].Quantity != 2 {
		t.Fatalf("input state mutated")
	}
	if next.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", next.Items[0].Quantity)
	}
}

func TestReduce_RemoveAbsentIsNoop(t *testing.T) {
	state := domain.Cart{Items: []domain.CartLineItem{line("a", "10", 1), line("b", "12", 1)}}
	next, err := Reduce(state, RemoveItem{ID: "zzz"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(next.Items))
	}
	next, _ = Reduce(next, RemoveItem{ID: "a"})
	if len(next.Items) != 1 || next.Items[0].ID != "b" {
		t.Fatalf("unexpected items %+v", next.Items)
	}
}

func TestReduce_SetQuantityGuard(t *testing.T) {
	state := domain.Cart{Items: []domain.CartLineItem{line("a", "10", 4)}}
	for _, q := range []int{0, -2} {
		next, err := Reduce(state, SetQuantity{ID: "a", Quantity: q})
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("quantity %d: expected validation error, got %v", q, err)
		}
		if next.Items[0].Quantity != 1 {
			t.Fatalf("quantity %d: expected reset to 1, got %d", q, next.Items[0].Quantity)
		}
	}
}

func TestReduce_SetQuantityUnknownLine(t *testing.T) {
	state := domain.Cart{Items: []domain.CartLineItem{line("a", "10", 4)}}
	_, err := Reduce(state, SetQuantity{ID: "b", Quantity: 2})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReduce_Clear(t *testing.T) {
	state := domain.Cart{Items: []domain.CartLineItem{line("a", "10", 4)}}
	next, _ := Reduce(state, Clear{})
	if !next.IsEmpty() {
		t.Fatalf("expected empty cart")
	}
}

func TestCartTotalUsesUnroundedSum(t *testing.T) {
	third := decimal.NewFromInt(10).Div(decimal.NewFromInt(3))
	state := domain.Cart{Items: []domain.CartLineItem{
		{ID: "a", PricePerUnit: third, Quantity: 3},
		{ID: "b", PricePerUnit: decimal.RequireFromString("12.50"), Quantity: 2},
	}}
	got := state.Total().StringFixed(2)
	if got != "35.00" {
		t.Fatalf("expected 35.00, got %s", got)
	}
}

func TestParseQuantity(t *testing.T) {
	for _, raw := range []string{"", "abc", "0", "-1", "1.5"} {
		if _, err := ParseQuantity(raw); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
	n, err := ParseQuantity(" 3 ")
	if err != nil || n != 3 {
		t.Fatalf("expected 3, got %d (%v)", n, err)
	}
}
