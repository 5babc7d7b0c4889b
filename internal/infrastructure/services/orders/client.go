// internal/infrastructure/services/orders/client.go
package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/your-org/pharmacy-pos/internal/config"
)

// Client notifies the online-order lifecycle system. The register only
// ever tells it one thing: a pickup order it loaded into the cart was paid
// for and fulfilled.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new order lifecycle client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Services.Orders.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Services.Orders.Timeout,
		},
	}
}

// Order is an online pickup order as the order service reports it.
type Order struct {
	ID     string      `json:"id"`
	Status string      `json:"status"`
	Items  []OrderItem `json:"items"`
}

// OrderItem is one ordered product
type OrderItem struct {
	ProductID   uint `json:"product_id"`
	Quantity    int  `json:"quantity"`
	AsSplitUnit bool `json:"as_split_unit"`
}

// GetOrder fetches a pickup order so the register can load it into the cart.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/orders/%s", c.baseURL, orderID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order service returned status %d", resp.StatusCode)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}

	return &order, nil
}

// MarkFulfilled reports that a pickup order was completed at the register.
func (c *Client) MarkFulfilled(ctx context.Context, orderID string, receiptNumber string) error {
	body, err := json.Marshal(map[string]string{
		"status":         "fulfilled",
		"receipt_number": receiptNumber,
	})
	if err != nil {
		return fmt.Errorf("failed to encode fulfillment notice: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/orders/%s/fulfill", c.baseURL, orderID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build fulfillment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("order service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("order service returned status %d", resp.StatusCode)
	}

	return nil
}
