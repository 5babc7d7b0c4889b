// internal/infrastructure/services/rewards/client.go
package rewards

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/your-org/pharmacy-pos/internal/config"
)

// Client talks to the Reward Issuance Service, which mints redeemable
// loyalty codes for qualifying sales. Failures here are never fatal to a
// sale; the receipt just goes out without a reward section.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new reward issuance client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Services.Rewards.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Services.Rewards.Timeout,
		},
	}
}

// IssueRequest asks for a reward code for a completed sale
type IssueRequest struct {
	SourceType    string  `json:"source_type"`
	OrderID       int64   `json:"order_id"`
	SaleReference string  `json:"sale_reference"`
	CustomerLabel string  `json:"customer_label"`
	TotalAmount   float64 `json:"total_amount"`
}

// IssueResponse carries the code, when one was granted
type IssueResponse struct {
	Success   bool       `json:"success"`
	Code      string     `json:"code,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Issue requests a reward code. An empty code on a success response is
// valid: not every sale earns one.
func (c *Client) Issue(ctx context.Context, req *IssueRequest) (*IssueResponse, error) {
	req.SourceType = "pos"

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reward request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rewards/issue", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build reward request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("reward service unreachable: %w", err)
	}
	defer resp.Body.Close()

	var out IssueResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode reward response: %w", err)
	}

	return &out, nil
}
