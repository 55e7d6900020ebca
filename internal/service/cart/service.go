// Package cart owns the cart of every session. All mutations go through
// Dispatch so each session has a single writer.
package cart

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pizza-storefront/internal/domain"
	"pizza-storefront/internal/pricing"
	cartrepo "pizza-storefront/internal/repository/cart"
	"pizza-storefront/internal/service/catalog"
)

type catalogReader interface {
	Pizza(ctx context.Context, id string) (domain.PizzaDefinition, *catalog.Menu, error)
}

type Service struct {
	repo    cartrepo.Repository
	catalog catalogReader
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string

	locksMu sync.Mutex
	locks   map[string]*sessionLock

	subsMu  sync.Mutex
	subs    map[string]map[int]chan domain.Cart
	nextSub int
}

func New(repo cartrepo.Repository, catalog catalogReader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
		locks:   make(map[string]*sessionLock),
		subs:    make(map[string]map[int]chan domain.Cart),
	}
}

func (s *Service) State(ctx context.Context, sessionID string) (domain.Cart, error) {
	return s.repo.Get(ctx, sessionID)
}

// Dispatch applies action to the session's cart, stores the result and
// notifies subscribers. When the reducer corrects the state and reports a
// validation error, the corrected state is still stored.
func (s *Service) Dispatch(ctx context.Context, sessionID string, action Action) (domain.Cart, error) {
	lock := s.lockSession(sessionID)
	defer s.unlockSession(sessionID, lock)

	current, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}
	next, reduceErr := Reduce(current, action)
	var verr *domain.ValidationError
	if reduceErr != nil && !errors.As(reduceErr, &verr) {
		return current, reduceErr
	}

	if next.IsEmpty() {
		err = s.repo.Delete(ctx, sessionID)
	} else {
		err = s.repo.Save(ctx, sessionID, next)
	}
	if err != nil {
		return current, err
	}
	s.publish(sessionID, next)
	return next, reduceErr
}

// AddSelection prices a customised pizza and appends it to the cart.
func (s *Service) AddSelection(ctx context.Context, sessionID string, sel domain.LineItemSelection) (domain.CartLineItem, domain.Cart, error) {
	item, err := s.BuildLineItem(ctx, sel)
	if err != nil {
		return domain.CartLineItem{}, domain.Cart{}, err
	}
	cart, err := s.Dispatch(ctx, sessionID, AddItem{Item: item})
	if err != nil {
		return domain.CartLineItem{}, domain.Cart{}, err
	}
	s.logger.Debug("cart item added",
		zap.String("session_id", sessionID),
		zap.String("item_id", item.ID),
		zap.String("price_per_unit", item.PricePerUnit.String()),
	)
	return item, cart, nil
}

// Quote prices a selection without touching the cart.
func (s *Service) Quote(ctx context.Context, sel domain.LineItemSelection) (pricing.Quote, error) {
	_, quote, err := s.resolve(ctx, sel)
	return quote, err
}

// SetQuantity applies user input to a line. Non-numeric or non-positive input
// resets the line to one and returns a validation error.
func (s *Service) SetQuantity(ctx context.Context, sessionID, itemID, raw string) (domain.Cart, error) {
	n, parseErr := ParseQuantity(raw)
	if parseErr != nil {
		cart, err := s.Dispatch(ctx, sessionID, SetQuantity{ID: itemID, Quantity: 1})
		if err != nil {
			return cart, err
		}
		return cart, parseErr
	}
	return s.Dispatch(ctx, sessionID, SetQuantity{ID: itemID, Quantity: n})
}

func (s *Service) Remove(ctx context.Context, sessionID, itemID string) (domain.Cart, error) {
	return s.Dispatch(ctx, sessionID, RemoveItem{ID: itemID})
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	_, err := s.Dispatch(ctx, sessionID, Clear{})
	return err
}

// BuildLineItem resolves and prices sel into a new cart line with a fresh id.
func (s *Service) BuildLineItem(ctx context.Context, sel domain.LineItemSelection) (domain.CartLineItem, error) {
	r, quote, err := s.resolve(ctx, sel)
	if err != nil {
		return domain.CartLineItem{}, err
	}
	return domain.CartLineItem{
		ID:              r.pizza.ID + "-" + s.newID(),
		PizzaID:         r.pizza.ID,
		Name:            r.pizza.Name,
		Size:            r.size,
		Kind:            r.pizza.Kind,
		DefaultToppings: r.kept,
		RemovedToppings: r.removed,
		ExtraToppings:   r.extras,
		Quantity:        sel.Quantity,
		PricePerUnit:    quote.PricePerUnit,
		AddedAt:         s.now().UTC(),
	}, nil
}

type resolved struct {
	pizza   domain.PizzaDefinition
	size    domain.Size
	kept    []domain.Topping
	removed []domain.Topping
	extras  map[domain.Topping]domain.ToppingTier
}

func (s *Service) resolve(ctx context.Context, sel domain.LineItemSelection) (resolved, pricing.Quote, error) {
	if sel.Quantity < 1 {
		return resolved{}, pricing.Quote{}, quantityError(strconv.Itoa(sel.Quantity))
	}
	size, err := domain.ParseSize(string(sel.Size))
	if err != nil {
		return resolved{}, pricing.Quote{}, &domain.ValidationError{
			Message: "Please choose a size.",
			Fields:  map[string]string{"size": string(sel.Size)},
		}
	}
	pizza, menu, err := s.catalog.Pizza(ctx, sel.PizzaID)
	if err != nil {
		return resolved{}, pricing.Quote{}, err
	}

	excluded := make(map[domain.Topping]bool, len(sel.Excluded))
	for _, t := range sel.Excluded {
		excluded[domain.NormalizeTopping(string(t))] = true
	}
	r := resolved{
		pizza:   pizza,
		size:    size,
		kept:    []domain.Topping{},
		removed: []domain.Topping{},
		extras:  map[domain.Topping]domain.ToppingTier{},
	}
	for _, base := range pizza.BaseToppings {
		if excluded[domain.NormalizeTopping(string(base))] {
			r.removed = append(r.removed, base)
			continue
		}
		r.kept = append(r.kept, base)
	}
	for name, rawTier := range sel.Toppings {
		tier, err := domain.ParseTier(string(rawTier))
		if err != nil {
			return resolved{}, pricing.Quote{}, &domain.ValidationError{
				Message: "Unknown topping amount.",
				Fields:  map[string]string{string(name): string(rawTier)},
			}
		}
		t := domain.NormalizeTopping(string(name))
		if tier == domain.TierNone || pizza.HasBaseTopping(t) {
			continue
		}
		r.extras[t] = tier
	}

	quote, err := pricing.Price(menu.Pricing, pizza, size, r.extras, sel.Quantity)
	if err != nil {
		return resolved{}, pricing.Quote{}, err
	}
	return r, quote, nil
}

// sessionLock serialises writers of one session. It only lives in the
// locks map while some caller holds or waits on it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func (s *Service) lockSession(sessionID string) *sessionLock {
	s.locksMu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sessionLock{}
		s.locks[sessionID] = lock
	}
	lock.refs++
	s.locksMu.Unlock()

	lock.mu.Lock()
	return lock
}

func (s *Service) unlockSession(sessionID string, lock *sessionLock) {
	lock.mu.Unlock()

	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(s.locks, sessionID)
	}
}
