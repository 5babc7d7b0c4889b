// internal/domain/printing/tcplink.go
package printing

import (
	"context"
	"fmt"
	"net"
	"time"
)

// TCPLink is a Link over a raw TCP connection to a networked ESC/POS
// printer (the usual JetDirect-style port 9100).
type TCPLink struct {
	conn net.Conn
}

// DialTCP establishes a link to a networked printer.
func DialTCP(address string, timeout time.Duration) (*TCPLink, error) {
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to reach printer at %s: %w", address, err)
	}
	return &TCPLink{conn: conn}, nil
}

// Write sends one chunk, honoring the context deadline.
func (l *TCPLink) Write(ctx context.Context, chunk []byte) error {
	if deadline, ok := ctx.Deadline(); ok {
		if err := l.conn.SetWriteDeadline(deadline); err != nil {
			return err
		}
	}

	if _, err := l.conn.Write(chunk); err != nil {
		return fmt.Errorf("printer write failed: %w", err)
	}
	return nil
}

// MTU reports no payload bound of its own; TCP streams, so the configured
// chunk size alone paces the device buffer.
func (l *TCPLink) MTU() int {
	return 0
}

// Close implements Link
func (l *TCPLink) Close() error {
	return l.conn.Close()
}
