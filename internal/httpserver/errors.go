package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pizza-storefront/internal/domain"
)

const remoteUnavailableMessage = "Something went wrong talking to the order service. Please try again."

// writeError maps domain errors to responses. Anything unrecognised is a 500.
func (h *handler) writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		verr   *domain.ValidationError
		nf     *domain.NotFoundError
		dce    *domain.DataConsistencyError
		remote *domain.RemoteOperationError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Message, "fields": verr.Fields})
	case errors.Is(err, domain.ErrCartEmpty):
		c.JSON(http.StatusConflict, gin.H{"state": "cart_empty", "error": "Your cart is empty. Please add items to proceed to checkout."})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Entity + " not found"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &dce):
		h.logger.Warn("data consistency", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": dce.Error()})
	case errors.As(err, &remote):
		c.JSON(http.StatusBadGateway, gin.H{"error": remoteUnavailableMessage, "retryable": true})
	default:
		h.logger.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
