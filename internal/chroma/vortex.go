package chroma

import (
	"fmt"

	"github.com/nvandessel/chromaroot/internal/constants"
	"github.com/nvandessel/chromaroot/internal/digitroot"
)

// ScaleVortex maps a digit onto the byte range: 1..9 becomes 31..255.
func ScaleVortex(x int) int {
	return x*constants.VortexScale + constants.VortexOffset
}

// VortexColor derives an uppercase "#RRGGBB" color from the digital roots
// of channel*3, channel*6 and channel*9.
func VortexColor(channel int) string {
	// root(a*b) == root(root(a)*b), which keeps large channels from overflowing.
	root := digitroot.Of(channel)
	return vortexHex(
		ScaleVortex(digitroot.Of(root*3)),
		ScaleVortex(digitroot.Of(root*6)),
		ScaleVortex(digitroot.Of(root*9)),
	)
}

// vortexHex is kept apart from CMYKToCSS: vortex colors are uppercase.
func vortexHex(r, g, b int) string {
	return fmt.Sprintf("#%02X%02X%02X", uint8(r), uint8(g), uint8(b))
}

// VortexFrequency returns base*multiplier/divisor.
func VortexFrequency(base, multiplier, divisor float64) (float64, error) {
	if divisor == 0 {
		return 0, fmt.Errorf("frequency %g*%g/%g: %w", base, multiplier, divisor, ErrDivisionByZero)
	}
	return base * multiplier / divisor, nil
}
