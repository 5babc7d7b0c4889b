// internal/domain/printing/backend.go
package printing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/your-org/pharmacy-pos/internal/config"
	"github.com/your-org/pharmacy-pos/internal/domain/receipt"
	"github.com/your-org/pharmacy-pos/internal/domain/sale"
)

// BackendTransport sends the full sale to the backend print service, which
// owns a networked printer. Tier two of the fallback chain.
type BackendTransport struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendTransport creates the backend print tier
func NewBackendTransport(cfg *config.Config) *BackendTransport {
	return &BackendTransport{
		baseURL: cfg.Printer.PrintServiceURL,
		httpClient: &http.Client{
			Timeout: cfg.Printer.PrintServiceTimeout,
		},
	}
}

// Name implements Transport
func (t *BackendTransport) Name() string {
	return "backend"
}

// printRequest is the payload the print service expects
type printRequest struct {
	Sale        *sale.Sale `json:"sale"`
	PreviewText string     `json:"preview_text"`
}

// Print posts the sale to the print service. A 404 or 501 means the
// service doesn't implement receipt printing at all and the tier is dead
// for the session; any other failure is treated as transient.
func (t *BackendTransport) Print(ctx context.Context, s *sale.Sale, frames []receipt.Frame) (*Result, error) {
	body, err := json.Marshal(printRequest{
		Sale:        s,
		PreviewText: receipt.RenderText(frames),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode print request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/print/receipt", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build print request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("print service request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusAccepted:
		return &Result{Tier: t.Name()}, nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNotImplemented:
		return nil, fmt.Errorf("%w: print service returned %d", ErrTransportUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("print service returned status %d", resp.StatusCode)
	}
}
