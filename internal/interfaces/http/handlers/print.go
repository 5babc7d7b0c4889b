// internal/interfaces/http/handlers/print.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pharmacy-pos/internal/config"
	"github.com/your-org/pharmacy-pos/internal/domain/printing"
	"github.com/your-org/pharmacy-pos/internal/domain/sale"
	"github.com/your-org/pharmacy-pos/internal/pkg/pdf"
)

// PrintHandler handles printer management and receipt re-delivery
type PrintHandler struct {
	hardware    *printing.HardwareTransport
	dispatcher  *printing.Dispatcher
	coordinator *sale.Coordinator
	pdfService  *pdf.Service
	config      *config.Config
}

// NewPrintHandler creates a new print handler
func NewPrintHandler(
	hardware *printing.HardwareTransport,
	dispatcher *printing.Dispatcher,
	coordinator *sale.Coordinator,
	pdfService *pdf.Service,
	cfg *config.Config,
) *PrintHandler {
	return &PrintHandler{
		hardware:    hardware,
		dispatcher:  dispatcher,
		coordinator: coordinator,
		pdfService:  pdfService,
		config:      cfg,
	}
}

// ConnectRequest names the printer to link to
type ConnectRequest struct {
	Address string `json:"address" binding:"required"`
}

// Status handles GET /print/status
func (h *PrintHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Printer status retrieved successfully",
		"data": gin.H{
			"connected":      h.hardware.Connected(),
			"disabled_tiers": h.dispatcher.DisabledTiers(),
		},
	})
}

// Connect handles POST /print/connect
func (h *PrintHandler) Connect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	link, err := printing.DialTCP(req.Address, 5*time.Second)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	h.hardware.Connect(link)

	c.JSON(http.StatusOK, gin.H{
		"message": "Printer connected successfully",
	})
}

// Disconnect handles POST /print/disconnect
func (h *PrintHandler) Disconnect(c *gin.Context) {
	h.hardware.Disconnect()

	c.JSON(http.StatusOK, gin.H{
		"message": "Printer disconnected",
	})
}

// Reprint handles POST /sales/:receipt_number/reprint
func (h *PrintHandler) Reprint(c *gin.Context) {
	result, err := h.coordinator.Reprint(c.Request.Context(), c.Param("receipt_number"))
	if err != nil {
		if errors.Is(err, sale.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Sale not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Reprint failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Receipt reprinted successfully",
		"data":    result,
	})
}

// ReceiptPDF handles GET /sales/:receipt_number/pdf
func (h *PrintHandler) ReceiptPDF(c *gin.Context) {
	s, err := h.coordinator.GetSale(c.Request.Context(), c.Param("receipt_number"))
	if err != nil {
		if errors.Is(err, sale.ErrSaleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Sale not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load sale",
		})
		return
	}

	buf, err := h.pdfService.GenerateReceipt(s)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate PDF",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", s.ReceiptNumber))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
