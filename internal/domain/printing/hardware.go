// internal/domain/printing/hardware.go
package printing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pharmacy-pos/internal/config"
	"github.com/your-org/pharmacy-pos/internal/domain/receipt"
	"github.com/your-org/pharmacy-pos/internal/domain/sale"
)

// Link is an established byte channel to a physical printer. MTU is the
// negotiated maximum payload per write; the device cannot buffer unbounded
// outstanding writes, so writes are issued one at a time.
type Link interface {
	Write(ctx context.Context, chunk []byte) error
	MTU() int
	Close() error
}

// HardwareTransport delivers receipts over a directly connected printer
// link. At most one live link exists at a time: connecting while connected
// tears down the prior link first, and an unsolicited disconnect nulls the
// state so in-flight writes fail fast instead of retrying silently.
type HardwareTransport struct {
	mu     sync.Mutex
	link   Link
	config *config.Config
	logger *logrus.Logger
}

// NewHardwareTransport creates the hardware print tier
func NewHardwareTransport(cfg *config.Config, logger *logrus.Logger) *HardwareTransport {
	return &HardwareTransport{
		config: cfg,
		logger: logger,
	}
}

// Name implements Transport
func (t *HardwareTransport) Name() string {
	return "hardware"
}

// Connect installs a new link, closing any previous one first.
func (t *HardwareTransport) Connect(link Link) {
	t.mu.Lock()
	prior := t.link
	t.link = link
	t.mu.Unlock()

	if prior != nil {
		if err := prior.Close(); err != nil {
			t.logger.WithField("error", err.Error()).Warn("Failed to close prior printer link")
		}
	}
}

// Disconnect tears down the current link. Safe to call when not connected,
// and the right response to an unsolicited disconnect event.
func (t *HardwareTransport) Disconnect() {
	t.mu.Lock()
	link := t.link
	t.link = nil
	t.mu.Unlock()

	if link != nil {
		if err := link.Close(); err != nil {
			t.logger.WithField("error", err.Error()).Warn("Failed to close printer link")
		}
	}
}

// Connected reports whether a link is established.
func (t *HardwareTransport) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.link != nil
}

// Print serializes the frames and writes them in bounded chunks, pausing
// between writes so the device buffer drains. Each chunk is awaited before
// the next is sent; the link disappearing mid-receipt aborts immediately.
func (t *HardwareTransport) Print(ctx context.Context, s *sale.Sale, frames []receipt.Frame) (*Result, error) {
	t.mu.Lock()
	link := t.link
	t.mu.Unlock()

	if link == nil {
		return nil, ErrNotConnected
	}

	var payload []byte
	for _, frame := range frames {
		payload = append(payload, frame.Bytes()...)
	}

	chunkSize := t.config.Printer.ChunkSize
	if mtu := link.MTU(); mtu > 0 && mtu < chunkSize {
		chunkSize = mtu
	}

	for offset := 0; offset < len(payload); offset += chunkSize {
		end := offset + chunkSize
		if end > len(payload) {
			end = len(payload)
		}

		t.mu.Lock()
		current := t.link
		t.mu.Unlock()
		if current != link {
			return nil, fmt.Errorf("printer link lost mid-receipt: %w", ErrNotConnected)
		}

		if err := link.Write(ctx, payload[offset:end]); err != nil {
			return nil, fmt.Errorf("hardware write failed at byte %d: %w", offset, err)
		}

		if end < len(payload) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(t.config.Printer.ChunkDelay):
			}
		}
	}

	return &Result{Tier: t.Name()}, nil
}
