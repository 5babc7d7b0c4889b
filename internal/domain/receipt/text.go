// internal/domain/receipt/text.go
package receipt

import (
	"strings"
)

// RenderText flattens a frame sequence to plain text, dropping control
// codes. This is what the manual-print fallback shows on screen and what
// the backend print service receives as a preview.
func RenderText(frames []Frame) string {
	var b strings.Builder
	for _, frame := range frames {
		if frame.IsRaw() {
			continue
		}
		b.WriteString(frame.Text)
		b.WriteByte('\n')
	}
	return b.String()
}
