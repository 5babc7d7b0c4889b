// internal/domain/receipt/format.go
package receipt

import (
	"fmt"
	"strings"
)

// FormatMoney renders an amount the way it appears on the printed receipt:
// peso sign stand-in, two decimals, thousands separators. The format is
// fixed regardless of host locale because the receipt is a legal record.
func FormatMoney(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(s, ".", 2)
	whole, frac := parts[0], parts[1]

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := "P" + b.String() + "." + frac
	if negative {
		out = "-" + out
	}
	return out
}

// wrap splits text into segments no wider than width, breaking at the last
// space that fits and hard-breaking runs with no space.
func wrap(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}

	var segments []string
	for len(text) > width {
		cut := strings.LastIndex(text[:width+1], " ")
		if cut <= 0 {
			segments = append(segments, text[:width])
			text = text[width:]
			continue
		}
		segments = append(segments, text[:cut])
		text = text[cut+1:]
	}
	if text != "" {
		segments = append(segments, text)
	}
	if len(segments) == 0 {
		segments = []string{""}
	}
	return segments
}

// twoColumns left-pads the right value so both columns align within width.
// If the pair doesn't fit, a single space keeps them apart.
func twoColumns(left, right string, width int) string {
	pad := width - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

// divider is a full-width rule of dashes.
func divider(width int) string {
	return strings.Repeat("-", width)
}
