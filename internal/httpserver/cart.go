package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pizza-storefront/internal/domain"
)

func (h *handler) getCart(c *gin.Context) {
	cart, err := h.deps.Cart.State(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

func (h *handler) addCartItem(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, selectionBindError(err))
		return
	}
	item, cart, err := h.deps.Cart.AddSelection(c.Request.Context(), sessionID(c), req.selection())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": toLineItemView(item), "cart": toCartView(cart)})
}

type quantityRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

// raw returns the quantity as the user typed it; JSON strings are unquoted
// and any other literal is passed through.
func (r quantityRequest) raw() string {
	var s string
	if err := json.Unmarshal(r.Quantity, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(r.Quantity))
}

func (h *handler) setCartItemQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "quantity is required")
		return
	}
	cart, err := h.deps.Cart.SetQuantity(c.Request.Context(), sessionID(c), c.Param("id"), req.raw())
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  verr.Message,
			"fields": verr.Fields,
			"cart":   toCartView(cart),
		})
		return
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

func (h *handler) removeCartItem(c *gin.Context) {
	cart, err := h.deps.Cart.Remove(c.Request.Context(), sessionID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

func (h *handler) clearCart(c *gin.Context) {
	if err := h.deps.Cart.Clear(c.Request.Context(), sessionID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// cartEvents streams the session's cart as server-sent events, starting with
// the current state.
func (h *handler) cartEvents(c *gin.Context) {
	ctx := c.Request.Context()
	session := sessionID(c)

	updates, cancel := h.deps.Cart.Subscribe(session)
	defer cancel()

	current, err := h.deps.Cart.State(ctx, session)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent("cart", toCartView(current))
	c.Writer.Flush()

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("cart stream closed", zap.String("session_id", session))
			return
		case <-h.closing:
			h.logger.Debug("cart stream closed by shutdown", zap.String("session_id", session))
			return
		case state, ok := <-updates:
			if !ok {
				return
			}
			c.SSEvent("cart", toCartView(state))
			c.Writer.Flush()
		}
	}
}
