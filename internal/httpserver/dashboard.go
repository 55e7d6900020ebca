package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handler) listOrders(c *gin.Context) {
	rows, err := h.deps.Dashboard.Orders(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": rows})
}

func (h *handler) orderDetails(c *gin.Context) {
	details, err := h.deps.Dashboard.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *handler) updateOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}
	row, err := h.deps.Dashboard.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}
