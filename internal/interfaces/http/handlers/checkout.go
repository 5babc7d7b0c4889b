// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pharmacy-pos/internal/domain/cart"
	"github.com/your-org/pharmacy-pos/internal/domain/sale"
	"github.com/your-org/pharmacy-pos/internal/interfaces/http/middleware"
)

// CheckoutHandler drives the payment flow endpoints
type CheckoutHandler struct {
	coordinator *sale.Coordinator
	sessions    *cart.SessionStore
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(coordinator *sale.Coordinator, sessions *cart.SessionStore) *CheckoutHandler {
	return &CheckoutHandler{
		coordinator: coordinator,
		sessions:    sessions,
	}
}

// State handles GET /checkout/state
func (h *CheckoutHandler) State(c *gin.Context) {
	terminalID, _ := middleware.GetTerminalIDFromContext(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Transaction state retrieved successfully",
		"data": gin.H{
			"state": h.coordinator.State(terminalID),
		},
	})
}

// Begin handles POST /checkout/begin
func (h *CheckoutHandler) Begin(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	snapshot, err := h.coordinator.BeginPayment(session)
	if err != nil {
		h.writeFlowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment step opened",
		"data": gin.H{
			"pricing": snapshot,
		},
	})
}

// Cancel handles POST /checkout/cancel
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	terminalID, _ := middleware.GetTerminalIDFromContext(c)

	if err := h.coordinator.CancelPayment(terminalID); err != nil {
		h.writeFlowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment cancelled, cart unchanged",
	})
}

// Complete handles POST /checkout/complete
func (h *CheckoutHandler) Complete(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	var req sale.CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.coordinator.Complete(c.Request.Context(), session, &req)
	if err != nil {
		var persistErr *sale.PersistenceError
		if errors.As(err, &persistErr) {
			c.JSON(http.StatusBadGateway, gin.H{
				"error": persistErr.Error(),
			})
			return
		}
		h.writeFlowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale completed successfully",
		"data":    result,
	})
}

// NewSale handles POST /checkout/new-sale
func (h *CheckoutHandler) NewSale(c *gin.Context) {
	terminalID, _ := middleware.GetTerminalIDFromContext(c)

	if err := h.coordinator.NewSale(terminalID); err != nil {
		h.writeFlowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Register ready for the next sale",
	})
}

func (h *CheckoutHandler) writeFlowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sale.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, sale.ErrEmptyCart), errors.Is(err, sale.ErrInsufficientTender):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Checkout failed",
		})
	}
}

func (h *CheckoutHandler) loadSession(c *gin.Context) (*cart.Session, bool) {
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
