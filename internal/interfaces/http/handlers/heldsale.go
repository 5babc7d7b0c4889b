// internal/interfaces/http/handlers/heldsale.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pharmacy-pos/internal/domain/cart"
	"github.com/your-org/pharmacy-pos/internal/domain/heldsale"
	"github.com/your-org/pharmacy-pos/internal/interfaces/http/middleware"
)

// HeldSaleHandler handles hold/resume endpoints
type HeldSaleHandler struct {
	service  *heldsale.Service
	sessions *cart.SessionStore
}

// NewHeldSaleHandler creates a new held-sale handler
func NewHeldSaleHandler(service *heldsale.Service, sessions *cart.SessionStore) *HeldSaleHandler {
	return &HeldSaleHandler{
		service:  service,
		sessions: sessions,
	}
}

// Hold handles POST /register/hold
func (h *HeldSaleHandler) Hold(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	if session.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Nothing to hold, the cart is empty",
		})
		return
	}

	entry, err := h.service.Hold(c.Request.Context(), session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to hold sale",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale held successfully",
		"data":    entry,
	})
}

// List handles GET /register/held
func (h *HeldSaleHandler) List(c *gin.Context) {
	terminalID, _ := middleware.GetTerminalIDFromContext(c)

	entries, err := h.service.List(c.Request.Context(), terminalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list held sales",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Held sales retrieved successfully",
		"data":    entries,
	})
}

// Resume handles POST /register/held/:id/resume
func (h *HeldSaleHandler) Resume(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid held sale ID",
		})
		return
	}

	entry, err := h.service.Resume(c.Request.Context(), session, id)
	if err != nil {
		if errors.Is(err, heldsale.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Held sale not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to resume held sale",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Held sale resumed successfully",
		"data": gin.H{
			"entry":   entry,
			"session": session,
		},
	})
}

// Delete handles DELETE /register/held/:id
func (h *HeldSaleHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid held sale ID",
		})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, heldsale.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Held sale not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete held sale",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Held sale deleted successfully",
	})
}

func (h *HeldSaleHandler) loadSession(c *gin.Context) (*cart.Session, bool) {
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
