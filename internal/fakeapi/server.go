package fakeapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pizza-storefront/internal/domain"
)

// Menu is the catalog the fake API serves.
type Menu struct {
	SpecialtyPizzas []domain.PizzaDefinition
	Pricing         domain.PricingTable
}

// Upsert replaces the specialty pizza with the same id or appends p.
func (m *Menu) Upsert(_ context.Context, p domain.PizzaDefinition) error {
	for i := range m.SpecialtyPizzas {
		if m.SpecialtyPizzas[i].ID == p.ID {
			m.SpecialtyPizzas[i] = p
			return nil
		}
	}
	m.SpecialtyPizzas = append(m.SpecialtyPizzas, p)
	return nil
}

type toppingJSON struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

type specialtyPizzaJSON struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Group       string             `json:"group"`
	Description string             `json:"description"`
	Toppings    []toppingJSON      `json:"toppings"`
	Price       map[string]float64 `json:"price"`
}

type pricingJSON struct {
	Size          map[string]float64            `json:"size"`
	ToppingPrices map[string]map[string]float64 `json:"toppingPrices"`
}

type statusRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

type cancelRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

// NewRouter serves the order API endpoints over gin. Prices are rendered as
// JSON numbers and topping keys use underscores, as the real API does.
func NewRouter(menu Menu, store *Store, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := gin.New()
	router.Use(gin.Recovery())

	pizzas := encodePizzas(menu.SpecialtyPizzas)
	pricing := encodePricing(menu.Pricing)

	router.GET("/specialty-pizzas", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"specialtyPizzas": pizzas})
	})
	router.GET("/pizza-pricing", func(c *gin.Context) {
		c.JSON(http.StatusOK, pricing)
	})
	router.POST("/pizza", func(c *gin.Context) {
		var sub domain.OrderSubmission
		if err := c.ShouldBindJSON(&sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order"})
			return
		}
		if strings.TrimSpace(sub.LocationID) == "" || len(sub.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "locationId and items are required"})
			return
		}
		order := store.Create(sub)
		logger.Info("order created", zap.String("order_id", order.ID), zap.String("location_id", order.LocationID))
		c.JSON(http.StatusCreated, gin.H{"order": order})
	})
	router.GET("/pizzas", func(c *gin.Context) {
		locationID := c.Query("locationId")
		if locationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "locationId required"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": store.List(locationID)})
	})
	router.GET("/pizza", func(c *gin.Context) {
		order, err := store.Get(c.Query("orderId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	})
	router.PUT("/pizza/status", func(c *gin.Context) {
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderId and status required"})
			return
		}
		status, err := domain.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := store.SetStatus(req.OrderID, status)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	})
	router.POST("/pizza/cancel", func(c *gin.Context) {
		var req cancelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderId required"})
			return
		}
		order, err := store.Cancel(req.OrderID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, errNotCancellable):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		default:
			c.JSON(http.StatusOK, gin.H{"order": order})
		}
	})

	return router
}

func encodePizzas(in []domain.PizzaDefinition) []specialtyPizzaJSON {
	out := make([]specialtyPizzaJSON, 0, len(in))
	for _, p := range in {
		toppings := make([]toppingJSON, 0, len(p.BaseToppings))
		for _, t := range p.BaseToppings {
			toppings = append(toppings, toppingJSON{Name: string(t), Quantity: string(domain.TierRegular)})
		}
		price := make(map[string]float64, len(p.Price))
		for size, amount := range p.Price {
			price[string(size)] = amount.InexactFloat64()
		}
		out = append(out, specialtyPizzaJSON{
			ID:          p.ID,
			Name:        p.Name,
			Group:       string(p.Group),
			Description: p.Description,
			Toppings:    toppings,
			Price:       price,
		})
	}
	return out
}

func encodePricing(in domain.PricingTable) pricingJSON {
	out := pricingJSON{
		Size:          make(map[string]float64, len(in.Size)),
		ToppingPrices: make(map[string]map[string]float64, len(in.ToppingPrices)),
	}
	for size, amount := range in.Size {
		out.Size[string(size)] = amount.InexactFloat64()
	}
	for topping, tiers := range in.ToppingPrices {
		key := strings.ReplaceAll(string(topping), " ", "_")
		out.ToppingPrices[key] = make(map[string]float64, len(tiers))
		for tier, amount := range tiers {
			out.ToppingPrices[key][string(tier)] = amount.InexactFloat64()
		}
	}
	return out
}
