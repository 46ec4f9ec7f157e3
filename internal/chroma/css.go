package chroma

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// CMYKToCSS encodes c as a lowercase "#rrggbb" display color.
// Out-of-range channels are clamped, never rejected.
func CMYKToCSS(c CMYK) string {
	c = c.Clamped()
	ink := 1 - float64(c.K)/100
	return colorful.Color{
		R: (1 - float64(c.C)/100) * ink,
		G: (1 - float64(c.M)/100) * ink,
		B: (1 - float64(c.Y)/100) * ink,
	}.Hex()
}

// CSSToCMYK decodes "#rrggbb" or "#rgb" into CMYK percentages.
// The leading '#' is optional.
func CSSToCMYK(s string) (CMYK, error) {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 7 && len(hex) != 4 {
		return CMYK{}, fmt.Errorf("css color %q: %w", s, ErrInvalidInput)
	}

	col, err := colorful.Hex(hex)
	if err != nil {
		return CMYK{}, fmt.Errorf("css color %q: %w", s, ErrInvalidInput)
	}

	r, g, b := col.RGB255()
	return RGBToCMYK(RGB{R: r, G: g, B: b}), nil
}
