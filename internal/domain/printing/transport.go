// internal/domain/printing/transport.go
package printing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pharmacy-pos/internal/domain/receipt"
	"github.com/your-org/pharmacy-pos/internal/domain/sale"
)

// Result reports which tier delivered the receipt. PlainText is set only by
// the manual fallback tier, for the UI to open in a print view.
type Result struct {
	Tier      string `json:"tier"`
	PlainText string `json:"plain_text,omitempty"`
}

// Transport is one candidate delivery path for an encoded receipt.
type Transport interface {
	Name() string
	Print(ctx context.Context, s *sale.Sale, frames []receipt.Frame) (*Result, error)
}

// Dispatcher tries transports in fixed priority order, stopping at the
// first success. A tier that fails for a capability reason is disabled for
// the rest of the session so known-dead paths are never retried; transient
// failures leave the tier enabled.
type Dispatcher struct {
	mu       sync.Mutex
	tiers    []Transport
	disabled map[string]bool
	logger   *logrus.Logger
}

// NewDispatcher creates a dispatcher over the given tiers, highest
// priority first.
func NewDispatcher(logger *logrus.Logger, tiers ...Transport) *Dispatcher {
	return &Dispatcher{
		tiers:    tiers,
		disabled: make(map[string]bool),
		logger:   logger,
	}
}

// Print delivers the receipt through the first working tier.
func (d *Dispatcher) Print(ctx context.Context, s *sale.Sale, frames []receipt.Frame) (*Result, error) {
	var lastErr error

	for _, tier := range d.tiers {
		if d.isDisabled(tier.Name()) {
			continue
		}

		result, err := tier.Print(ctx, s, frames)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if errors.Is(err, ErrTransportUnavailable) {
			d.disable(tier.Name())
			d.logger.WithFields(logrus.Fields{
				"tier":  tier.Name(),
				"error": err.Error(),
			}).Warn("Print tier disabled for this session")
			continue
		}

		d.logger.WithFields(logrus.Fields{
			"tier":  tier.Name(),
			"error": err.Error(),
		}).Warn("Print tier failed, trying next")
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllTiersFailed, lastErr)
	}
	return nil, ErrAllTiersFailed
}

// DisabledTiers lists tiers marked unavailable this session.
func (d *Dispatcher) DisabledTiers() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var names []string
	for _, tier := range d.tiers {
		if d.disabled[tier.Name()] {
			names = append(names, tier.Name())
		}
	}
	return names
}

func (d *Dispatcher) isDisabled(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.disabled[name]
}

func (d *Dispatcher) disable(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disabled[name] = true
}
