// internal/domain/printing/transport_test.go
package printing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pharmacy-pos/internal/domain/receipt"
	"github.com/your-org/pharmacy-pos/internal/domain/sale"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type stubTransport struct {
	name   string
	err    error
	prints int
}

func (t *stubTransport) Name() string { return t.name }

func (t *stubTransport) Print(_ context.Context, _ *sale.Sale, _ []receipt.Frame) (*Result, error) {
	t.prints++
	if t.err != nil {
		return nil, t.err
	}
	return &Result{Tier: t.name}, nil
}

func TestDispatcherFirstSuccessWins(t *testing.T) {
	first := &stubTransport{name: "hardware"}
	second := &stubTransport{name: "backend"}
	d := NewDispatcher(quietLogger(), first, second)

	result, err := d.Print(context.Background(), &sale.Sale{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "hardware", result.Tier)
	assert.Equal(t, 0, second.prints)
}

func TestDispatcherFallsThroughTransientFailure(t *testing.T) {
	first := &stubTransport{name: "hardware", err: ErrNotConnected}
	second := &stubTransport{name: "backend"}
	d := NewDispatcher(quietLogger(), first, second)

	result, err := d.Print(context.Background(), &sale.Sale{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "backend", result.Tier)

	// A transient failure leaves the tier enabled for the next receipt.
	_, err = d.Print(context.Background(), &sale.Sale{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, first.prints)
	assert.Empty(t, d.DisabledTiers())
}

func TestDispatcherDisablesUnavailableTier(t *testing.T) {
	first := &stubTransport{
		name: "hardware",
		err:  fmt.Errorf("%w: serial API missing", ErrTransportUnavailable),
	}
	second := &stubTransport{name: "backend"}
	d := NewDispatcher(quietLogger(), first, second)

	_, err := d.Print(context.Background(), &sale.Sale{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"hardware"}, d.DisabledTiers())

	// Disabled tiers are never retried this session.
	_, err = d.Print(context.Background(), &sale.Sale{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.prints)
	assert.Equal(t, 2, second.prints)
}

func TestDispatcherAllTiersFail(t *testing.T) {
	first := &stubTransport{name: "hardware", err: ErrNotConnected}
	second := &stubTransport{name: "backend", err: errors.New("timeout")}
	d := NewDispatcher(quietLogger(), first, second)

	_, err := d.Print(context.Background(), &sale.Sale{}, nil)
	assert.ErrorIs(t, err, ErrAllTiersFailed)
}

func TestFallbackAlwaysSucceeds(t *testing.T) {
	frames := []receipt.Frame{
		{Text: "Calloway Pharmacy"},
		{Raw: []byte{0x1B, 0x40}},
		{Text: "TOTAL  P237.44"},
	}

	result, err := NewFallbackTransport().Print(context.Background(), &sale.Sale{}, frames)
	require.NoError(t, err)

	assert.Equal(t, "manual", result.Tier)
	assert.Equal(t, "Calloway Pharmacy\nTOTAL  P237.44\n", result.PlainText)
}
