package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pizza-storefront/internal/service/checkout"
)

func (h *handler) getCheckout(c *gin.Context) {
	summary, err := h.deps.Checkout.Summary(c.Request.Context(), sessionID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	items := make([]lineItemView, 0, len(summary.Items))
	for _, item := range summary.Items {
		items = append(items, toLineItemView(item))
	}
	c.JSON(http.StatusOK, gin.H{"state": "ready", "items": items, "total": money(summary.Total)})
}

func (h *handler) placeOrder(c *gin.Context) {
	var form checkout.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "invalid checkout form")
		return
	}
	order, err := h.deps.Checkout.PlaceOrder(c.Request.Context(), sessionID(c), form)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}
