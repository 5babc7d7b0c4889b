// internal/pkg/escpos/commands.go
package escpos

// ESC/POS control sequences understood by the thermal printers we target.
// Text is sent between these as plain bytes; the printer renders it in the
// mode the preceding control codes selected.

var (
	// Reset returns the device to its power-on state
	Reset = []byte{0x1B, 0x40}

	AlignLeft   = []byte{0x1B, 0x61, 0x00}
	AlignCenter = []byte{0x1B, 0x61, 0x01}
	AlignRight  = []byte{0x1B, 0x61, 0x02}

	BoldOn  = []byte{0x1B, 0x45, 0x01}
	BoldOff = []byte{0x1B, 0x45, 0x00}

	// Double width and height via GS !
	DoubleSizeOn  = []byte{0x1D, 0x21, 0x11}
	DoubleSizeOff = []byte{0x1D, 0x21, 0x00}

	// PartialCut leaves a paper bridge so the receipt tears cleanly
	PartialCut = []byte{0x1D, 0x56, 0x42, 0x00}

	// DrawerKick pulses drawer pin 2
	DrawerKick = []byte{0x1B, 0x70, 0x00, 0x19, 0xFA}

	// QRSelectModel selects QR model 2, the only model narrow printers ship
	QRSelectModel = []byte{0x1D, 0x28, 0x6B, 0x04, 0x00, 0x31, 0x41, 0x32, 0x00}

	// QRPrint prints the previously stored QR symbol
	QRPrint = []byte{0x1D, 0x28, 0x6B, 0x03, 0x00, 0x31, 0x51, 0x30}
)

// Feed advances the paper n lines.
func Feed(n byte) []byte {
	return []byte{0x1B, 0x64, n}
}

// QRModuleSize sets the dot size of one QR module (1-16).
func QRModuleSize(n byte) []byte {
	return []byte{0x1D, 0x28, 0x6B, 0x03, 0x00, 0x31, 0x43, n}
}

// QRErrorCorrection sets the error correction level (48-51 = L,M,Q,H).
func QRErrorCorrection(n byte) []byte {
	return []byte{0x1D, 0x28, 0x6B, 0x03, 0x00, 0x31, 0x45, n}
}

// QRStore stores the symbol payload in the printer's buffer. The length
// prefix counts the payload plus the three function-selector bytes, little
// endian, per the GS ( k function 80 encoding.
func QRStore(data []byte) []byte {
	length := len(data) + 3
	cmd := []byte{0x1D, 0x28, 0x6B, byte(length & 0xFF), byte(length >> 8), 0x31, 0x50, 0x30}
	return append(cmd, data...)
}
