package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"pizza-storefront/internal/domain"
)

func (h *handler) getMenu(c *gin.Context) {
	menu, err := h.deps.Menu.Load(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMenuView(menu))
}

// selectionRequest is a customised pizza as posted by the client. A missing
// quantity means one.
type selectionRequest struct {
	PizzaID  string                                `json:"pizzaId" binding:"required"`
	Size     domain.Size                           `json:"size" binding:"required"`
	Excluded []domain.Topping                      `json:"excludedToppings"`
	Toppings map[domain.Topping]domain.ToppingTier `json:"toppings"`
	Quantity *int                                  `json:"quantity"`
}

func (r selectionRequest) selection() domain.LineItemSelection {
	qty := 1
	if r.Quantity != nil {
		qty = *r.Quantity
	}
	return domain.LineItemSelection{
		PizzaID:  r.PizzaID,
		Size:     r.Size,
		Excluded: r.Excluded,
		Toppings: r.Toppings,
		Quantity: qty,
	}
}

func (h *handler) quote(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, selectionBindError(err))
		return
	}
	q, err := h.deps.Cart.Quote(c.Request.Context(), req.selection())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quoteView{Total: money(q.Total), PricePerUnit: money(q.PricePerUnit)})
}

// selectionBindError describes why a selection body could not be bound.
func selectionBindError(err error) string {
	var missing validator.ValidationErrors
	if errors.As(err, &missing) {
		return "pizzaId and size are required"
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return "invalid value for " + typeErr.Field
	}
	return "invalid selection"
}
