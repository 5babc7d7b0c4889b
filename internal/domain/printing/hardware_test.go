// internal/domain/printing/hardware_test.go
package printing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pharmacy-pos/internal/config"
	"github.com/your-org/pharmacy-pos/internal/domain/receipt"
	"github.com/your-org/pharmacy-pos/internal/domain/sale"
)

type fakeLink struct {
	mtu      int
	writes   [][]byte
	writeErr error
	closed   bool

	// Called before each write when set, to simulate mid-receipt events.
	beforeWrite func()
}

func (l *fakeLink) Write(_ context.Context, chunk []byte) error {
	if l.beforeWrite != nil {
		l.beforeWrite()
	}
	if l.writeErr != nil {
		return l.writeErr
	}
	buf := make([]byte, len(chunk))
	copy(buf, chunk)
	l.writes = append(l.writes, buf)
	return nil
}

func (l *fakeLink) MTU() int { return l.mtu }

func (l *fakeLink) Close() error {
	l.closed = true
	return nil
}

func hardwareConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Printer.ChunkSize = 16
	cfg.Printer.ChunkDelay = 0
	return cfg
}

func frames(texts ...string) []receipt.Frame {
	var out []receipt.Frame
	for _, t := range texts {
		out = append(out, receipt.Frame{Text: t})
	}
	return out
}

func TestHardwareNotConnected(t *testing.T) {
	hw := NewHardwareTransport(hardwareConfig(), quietLogger())

	_, err := hw.Print(context.Background(), &sale.Sale{}, frames("hello"))
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestHardwareChunksWithinBound(t *testing.T) {
	link := &fakeLink{mtu: 64}
	hw := NewHardwareTransport(hardwareConfig(), quietLogger())
	hw.Connect(link)

	payload := "0123456789012345678901234567890123456789"
	result, err := hw.Print(context.Background(), &sale.Sale{}, frames(payload))
	require.NoError(t, err)
	assert.Equal(t, "hardware", result.Tier)

	// 41 bytes (payload + newline) in 16-byte chunks.
	require.Len(t, link.writes, 3)
	var total []byte
	for _, w := range link.writes {
		assert.LessOrEqual(t, len(w), 16)
		total = append(total, w...)
	}
	assert.Equal(t, payload+"\n", string(total))
}

func TestHardwareMTUCapsChunkSize(t *testing.T) {
	link := &fakeLink{mtu: 8}
	hw := NewHardwareTransport(hardwareConfig(), quietLogger())
	hw.Connect(link)

	_, err := hw.Print(context.Background(), &sale.Sale{}, frames("0123456789012345"))
	require.NoError(t, err)

	for _, w := range link.writes {
		assert.LessOrEqual(t, len(w), 8)
	}
}

func TestHardwareWriteFailureAborts(t *testing.T) {
	link := &fakeLink{mtu: 64, writeErr: errors.New("device gone")}
	hw := NewHardwareTransport(hardwareConfig(), quietLogger())
	hw.Connect(link)

	_, err := hw.Print(context.Background(), &sale.Sale{}, frames("hello"))
	assert.Error(t, err)
}

func TestHardwareDisconnectMidReceiptFailsFast(t *testing.T) {
	hw := NewHardwareTransport(hardwareConfig(), quietLogger())
	link := &fakeLink{mtu: 64}
	link.beforeWrite = func() {
		// An unsolicited disconnect lands between chunks.
		if len(link.writes) == 1 {
			hw.Disconnect()
		}
	}
	hw.Connect(link)

	_, err := hw.Print(context.Background(), &sale.Sale{},
		frames("0123456789012345678901234567890123456789"))
	assert.ErrorIs(t, err, ErrNotConnected)

	// Only the chunks before the disconnect went out.
	assert.LessOrEqual(t, len(link.writes), 2)
}

func TestHardwareReconnectReplacesLink(t *testing.T) {
	hw := NewHardwareTransport(hardwareConfig(), quietLogger())

	old := &fakeLink{mtu: 64}
	hw.Connect(old)
	assert.True(t, hw.Connected())

	replacement := &fakeLink{mtu: 64}
	hw.Connect(replacement)

	assert.True(t, old.closed)
	assert.True(t, hw.Connected())

	hw.Disconnect()
	assert.True(t, replacement.closed)
	assert.False(t, hw.Connected())
}
