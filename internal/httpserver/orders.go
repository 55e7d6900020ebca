package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handler) getOrder(c *gin.Context) {
	order, err := h.deps.OrderStatus.Fetch(c.Request.Context(), sessionID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *handler) cancelOrder(c *gin.Context) {
	order, err := h.deps.OrderStatus.Cancel(c.Request.Context(), sessionID(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
