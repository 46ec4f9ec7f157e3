// Package chroma maps digits, fractions and rotation steps onto CMYK print
// colors, and CMYK onto display colors.
//
// Every function in this package is pure and safe for concurrent use.
package chroma

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nvandessel/chromaroot/internal/constants"
)

// RGB stores 8-bit color channels.
type RGB struct {
	R, G, B uint8
}

// CMYK is percentage ink coverage, each channel in [0,100].
type CMYK struct {
	C int `json:"c" yaml:"c"`
	M int `json:"m" yaml:"m"`
	Y int `json:"y" yaml:"y"`
	K int `json:"k" yaml:"k"`
}

// Black is full key coverage.
var Black = CMYK{K: 100}

// Clamped returns c with every channel limited to [0,100].
func (c CMYK) Clamped() CMYK {
	return CMYK{
		C: clampPercent(c.C),
		M: clampPercent(c.M),
		Y: clampPercent(c.Y),
		K: clampPercent(c.K),
	}
}

// String formats c the way print tooling displays it.
func (c CMYK) String() string {
	return fmt.Sprintf("cmyk(%d%%, %d%%, %d%%, %d%%)", c.C, c.M, c.Y, c.K)
}

func clampPercent(v int) int {
	return min(max(v, 0), 100)
}

// NormalizeAngle folds any integer angle into [0,360).
func NormalizeAngle(raw int) int {
	return ((raw % constants.FullTurn) + constants.FullTurn) % constants.FullTurn
}

// BaseHue places a digit on the wheel by magnitude. The sign is ignored.
func BaseHue(digit int) int {
	d := digit % 10
	if d < 0 {
		d = -d
	}
	return d * constants.HueStep % constants.FullTurn
}

// Hue rotates the base hue of digit by angle degrees.
func Hue(digit, angle int) int {
	return (BaseHue(digit) + NormalizeAngle(angle)) % constants.FullTurn
}

// HueToRGB converts a fully saturated, fully bright HSV hue to RGB.
func HueToRGB(hue int) RGB {
	r, g, b := colorful.Hsv(float64(NormalizeAngle(hue)), 1, 1).RGB255()
	return RGB{R: r, G: g, B: b}
}

// RGBToCMYK converts an RGB triple to rounded CMYK percentages.
func RGBToCMYK(c RGB) CMYK {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	k := 1 - max(r, g, b)
	if k == 1 {
		return Black
	}

	return CMYK{
		C: percent((1 - r - k) / (1 - k)),
		M: percent((1 - g - k) / (1 - k)),
		Y: percent((1 - b - k) / (1 - k)),
		K: percent(k),
	}.Clamped()
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}

// DigitAngleToCMYK maps a digit and a rotation to a print color.
// Only the magnitude of digit selects the hue: 3 and -3 give the same color.
func DigitAngleToCMYK(digit, angle int) CMYK {
	return RGBToCMYK(HueToRGB(Hue(digit, angle)))
}
