// internal/infrastructure/services/salesync/client.go
package salesync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/your-org/pharmacy-pos/internal/config"
	"github.com/your-org/pharmacy-pos/internal/domain/cart"
)

// Client talks to the Sale Persistence Service, the system of record that
// stores finalized sales and decrements stock.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new sale persistence client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Services.SaleSync.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Services.SaleSync.Timeout,
		},
	}
}

// RecordSaleRequest is the submission payload
type RecordSaleRequest struct {
	Lines           []cart.Line `json:"lines"`
	Subtotal        float64     `json:"subtotal"`
	Tax             float64     `json:"tax"`
	DiscountPercent float64     `json:"discount_percent"`
	DiscountAmount  float64     `json:"discount_amount"`
	Total           float64     `json:"total"`
	PaymentMethod   string      `json:"payment_method"`
	AmountTendered  float64     `json:"amount_tendered"`
	ReceiptNumber   string      `json:"receipt_number"`
	CreatedAt       time.Time   `json:"created_at"`
	CashierName     string      `json:"cashier_name"`
}

// RecordSaleResponse is the service's answer
type RecordSaleResponse struct {
	Success          bool       `json:"success"`
	SaleID           int64      `json:"sale_id,omitempty"`
	ReceiptReference string     `json:"receipt_reference,omitempty"`
	RewardCode       string     `json:"reward_code,omitempty"`
	RewardExpiresAt  *time.Time `json:"reward_expires_at,omitempty"`
	Message          string     `json:"message,omitempty"`
}

// RecordSale submits a finalized sale. A transport failure or a
// success=false response both come back as an error so the caller never
// advances past Submitting on a rejected sale.
func (c *Client) RecordSale(ctx context.Context, req *RecordSaleRequest) (*RecordSaleResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sale: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sales", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build sale request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sale persistence service unreachable: %w", err)
	}
	defer resp.Body.Close()

	var out RecordSaleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode sale response: %w", err)
	}

	if !out.Success {
		if out.Message != "" {
			return &out, fmt.Errorf("sale rejected: %s", out.Message)
		}
		return &out, fmt.Errorf("sale rejected with status %d", resp.StatusCode)
	}

	return &out, nil
}
