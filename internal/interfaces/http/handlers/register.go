// internal/interfaces/http/handlers/register.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pharmacy-pos/internal/config"
	"github.com/your-org/pharmacy-pos/internal/domain/cart"
	"github.com/your-org/pharmacy-pos/internal/domain/pricing"
	"github.com/your-org/pharmacy-pos/internal/domain/product"
	"github.com/your-org/pharmacy-pos/internal/infrastructure/services/orders"
	"github.com/your-org/pharmacy-pos/internal/interfaces/http/middleware"
)

// RegisterHandler handles the active cart endpoints
type RegisterHandler struct {
	sessions *cart.SessionStore
	products *product.Service
	orders   *orders.Client
	config   *config.Config
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(sessions *cart.SessionStore, products *product.Service, ordersClient *orders.Client, cfg *config.Config) *RegisterHandler {
	return &RegisterHandler{
		sessions: sessions,
		products: products,
		orders:   ordersClient,
		config:   cfg,
	}
}

// AddItemRequest rings up one unit of a product
type AddItemRequest struct {
	ProductID   uint `json:"product_id" binding:"required"`
	AsSplitUnit bool `json:"as_split_unit"`
}

// UpdateLineRequest adjusts a cart line's quantity
type UpdateLineRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// SetDiscountRequest toggles the discount flag
type SetDiscountRequest struct {
	Applied *bool `json:"applied" binding:"required"`
}

// GetSession handles GET /register/session
func (h *RegisterHandler) GetSession(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Register session retrieved successfully",
		"data":    sessionResponse(session),
	})
}

// AddItem handles POST /register/items
func (h *RegisterHandler) AddItem(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	prod, err := h.products.GetProduct(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	if err := session.AddLine(prod, req.AsSplitUnit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if !h.saveSession(c, session) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added successfully",
		"data":    sessionResponse(session),
	})
}

// UpdateLine handles PUT /register/lines/:index
func (h *RegisterHandler) UpdateLine(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid line index",
		})
		return
	}

	var req UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := session.ChangeQuantity(index, req.Delta); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, cart.ErrLineNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	if !h.saveSession(c, session) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Line updated successfully",
		"data":    sessionResponse(session),
	})
}

// SetDiscount handles PUT /register/discount
func (h *RegisterHandler) SetDiscount(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	var req SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if *req.Applied {
		snapshot := pricing.Price(session.Lines, false)
		if !snapshot.DiscountEligible {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart does not qualify for the discount",
			})
			return
		}
	}

	session.DiscountApplied = *req.Applied
	if !h.saveSession(c, session) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Discount updated successfully",
		"data":    sessionResponse(session),
	})
}

// ClearCart handles DELETE /register/session
func (h *RegisterHandler) ClearCart(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	session.Clear()
	if !h.saveSession(c, session) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    sessionResponse(session),
	})
}

// LoadPickupOrder handles POST /register/orders/:id/load. The order's items
// replace the active cart and the session remembers the linkage so the
// order is marked fulfilled after payment.
func (h *RegisterHandler) LoadPickupOrder(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	if !session.IsEmpty() {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Hold or clear the active cart before loading an order",
		})
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	for _, item := range order.Items {
		prod, err := h.products.GetProduct(item.ProductID)
		if err != nil {
			session.Clear()
			c.JSON(http.StatusConflict, gin.H{
				"error": "Ordered product is no longer available",
			})
			return
		}

		if err := session.AddLine(prod, item.AsSplitUnit); err != nil {
			session.Clear()
			c.JSON(http.StatusConflict, gin.H{
				"error": err.Error(),
			})
			return
		}
		if item.Quantity > 1 {
			if err := session.ChangeQuantity(len(session.Lines)-1, item.Quantity-1); err != nil {
				session.Clear()
				c.JSON(http.StatusConflict, gin.H{
					"error": err.Error(),
				})
				return
			}
		}
	}

	session.ResumedOrderID = order.ID
	if !h.saveSession(c, session) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order loaded successfully",
		"data":    sessionResponse(session),
	})
}

// loadSession fetches the terminal's session and stamps the cashier on it.
func (h *RegisterHandler) loadSession(c *gin.Context) (*cart.Session, bool) {
	terminalID, exists := middleware.GetTerminalIDFromContext(c)
	if !exists || terminalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Terminal identity missing from token",
		})
		return nil, false
	}

	session, err := h.sessions.Get(c.Request.Context(), terminalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load register session",
		})
		return nil, false
	}

	if name, ok := middleware.GetCashierNameFromContext(c); ok {
		session.CashierName = name
	}

	return session, true
}

func (h *RegisterHandler) saveSession(c *gin.Context, session *cart.Session) bool {
	if err := h.sessions.Save(c.Request.Context(), session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save register session",
		})
		return false
	}
	return true
}

// sessionResponse pairs the session with its derived pricing, so the
// frontend never computes money on its own.
func sessionResponse(session *cart.Session) gin.H {
	return gin.H{
		"session": session,
		"pricing": pricing.Price(session.Lines, session.DiscountApplied),
	}
}
