package cart

import (
	"strconv"
	"strings"

	"pizza-storefront/internal/domain"
)

// Action is a cart mutation applied by Reduce.
type Action interface {
	apply(domain.Cart) (domain.Cart, error)
}

// AddItem appends a line. Identical lines are never merged.
type AddItem struct {
	Item domain.CartLineItem
}

// RemoveItem deletes the line with ID; absent ids are ignored.
type RemoveItem struct {
	ID string
}

// SetQuantity replaces the quantity of a line. Quantities below one are
// stored as one and reported as a validation error.
type SetQuantity struct {
	ID       string
	Quantity int
}

type Clear struct{}

const minQuantityMessage = "Quantity must be at least 1."

// Reduce applies action to state and returns the next state. state is never
// modified. A SetQuantity guard failure returns both the corrected state and
// a *domain.ValidationError.
func Reduce(state domain.Cart, action Action) (domain.Cart, error) {
	return action.apply(state)
}

func (a AddItem) apply(state domain.Cart) (domain.Cart, error) {
	items := make([]domain.CartLineItem, 0, len(state.Items)+1)
	items = append(items, state.Items...)
	items = append(items, a.Item)
	return domain.Cart{Items: items}, nil
}

func (a RemoveItem) apply(state domain.Cart) (domain.Cart, error) {
	items := make([]domain.CartLineItem, 0, len(state.Items))
	for _, item := range state.Items {
		if item.ID != a.ID {
			items = append(items, item)
		}
	}
	return domain.Cart{Items: items}, nil
}

func (a SetQuantity) apply(state domain.Cart) (domain.Cart, error) {
	idx := -1
	for i, item := range state.Items {
		if item.ID == a.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return state, domain.ErrNotFound
	}

	items := make([]domain.CartLineItem, len(state.Items))
	copy(items, state.Items)
	if a.Quantity < 1 {
		items[idx].Quantity = 1
		return domain.Cart{Items: items}, quantityError(strconv.Itoa(a.Quantity))
	}
	items[idx].Quantity = a.Quantity
	return domain.Cart{Items: items}, nil
}

func (Clear) apply(domain.Cart) (domain.Cart, error) {
	return domain.Cart{}, nil
}

// ParseQuantity reads a user-entered quantity. Anything that is not a whole
// number of at least one fails with a validation error.
func ParseQuantity(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, quantityError(raw)
	}
	return n, nil
}

func quantityError(raw string) *domain.ValidationError {
	return &domain.ValidationError{
		Message: minQuantityMessage,
		Fields:  map[string]string{"quantity": raw},
	}
}
