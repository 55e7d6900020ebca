package httpserver

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	healthgo "github.com/hellofresh/health-go/v5"
	"go.uber.org/zap"

	"pizza-storefront/internal/domain"
	"pizza-storefront/internal/pricing"
	"pizza-storefront/internal/service/catalog"
	"pizza-storefront/internal/service/checkout"
	"pizza-storefront/internal/service/dashboard"
)

type MenuService interface {
	Load(ctx context.Context) (*catalog.Menu, error)
}

type CartService interface {
	State(ctx context.Context, sessionID string) (domain.Cart, error)
	AddSelection(ctx context.Context, sessionID string, sel domain.LineItemSelection) (domain.CartLineItem, domain.Cart, error)
	Quote(ctx context.Context, sel domain.LineItemSelection) (pricing.Quote, error)
	SetQuantity(ctx context.Context, sessionID, itemID, raw string) (domain.Cart, error)
	Remove(ctx context.Context, sessionID, itemID string) (domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
	Subscribe(sessionID string) (<-chan domain.Cart, func())
}

type CheckoutService interface {
	Summary(ctx context.Context, sessionID string) (checkout.Summary, error)
	PlaceOrder(ctx context.Context, sessionID string, form checkout.Form) (*domain.OrderResponse, error)
}

type OrderStatusService interface {
	Fetch(ctx context.Context, sessionID, orderID string) (domain.OrderResponse, error)
	Cancel(ctx context.Context, sessionID, orderID string) (domain.OrderResponse, error)
}

type DashboardService interface {
	Orders(ctx context.Context) ([]dashboard.Row, error)
	Order(ctx context.Context, orderID string) (dashboard.Details, error)
	UpdateStatus(ctx context.Context, orderID, status string) (dashboard.Row, error)
}

type SessionService interface {
	Issue(ctx context.Context) (string, error)
	Touch(ctx context.Context, id string) error
	TTLSeconds() int
}

// Deps are the services the router dispatches to.
type Deps struct {
	Menu        MenuService
	Cart        CartService
	Checkout    CheckoutService
	OrderStatus OrderStatusService
	Dashboard   DashboardService
	Sessions    SessionService
	Health      *healthgo.Health
	CORSOrigins []string
}

type handler struct {
	deps   Deps
	logger *zap.Logger

	// closed when the server shuts down; ends event streams
	closing <-chan struct{}
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, deps Deps) *gin.Engine {
	return newRouter(logger, deps, nil)
}

func newRouter(logger *zap.Logger, deps Deps, closing <-chan struct{}) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := gin.New()
	router.Use(accessLog(logger), gin.Recovery())
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", sessionHeader},
			ExposeHeaders:    []string{sessionHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	h := &handler{deps: deps, logger: logger, closing: closing}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Health))

	router.GET("/menu", h.getMenu)
	router.POST("/menu/quote", h.quote)

	shop := router.Group("/", sessionMiddleware(deps.Sessions, logger))
	shop.GET("/cart", h.getCart)
	shop.GET("/cart/events", h.cartEvents)
	shop.POST("/cart/items", h.addCartItem)
	shop.PATCH("/cart/items/:id", h.setCartItemQuantity)
	shop.DELETE("/cart/items/:id", h.removeCartItem)
	shop.DELETE("/cart", h.clearCart)
	shop.GET("/checkout", h.getCheckout)
	shop.POST("/checkout", h.placeOrder)
	shop.GET("/orders/:id", h.getOrder)
	shop.POST("/orders/:id/cancel", h.cancelOrder)

	staff := router.Group("/dashboard")
	staff.GET("/orders", h.listOrders)
	staff.GET("/orders/:id", h.orderDetails)
	staff.PUT("/orders/:id/status", h.updateOrderStatus)

	return router
}
