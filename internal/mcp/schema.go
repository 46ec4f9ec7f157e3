package mcp

import (
	"github.com/nvandessel/chromaroot/internal/chroma"
	"github.com/nvandessel/chromaroot/internal/palette"
)

// DigitInput defines the input for chroma_digit tool.
type DigitInput struct {
	Digit int `json:"digit" jsonschema:"Digit seed; only its magnitude selects the hue"`
	Angle int `json:"angle,omitempty" jsonschema:"Rotation in degrees (default 0)"`
}

// DigitOutput defines the output for chroma_digit tool.
type DigitOutput struct {
	Digit int         `json:"digit"`
	Angle int         `json:"angle" jsonschema:"Normalized rotation in [0,360)"`
	Hue   int         `json:"hue" jsonschema:"Resulting hue in degrees"`
	CMYK  chroma.CMYK `json:"cmyk" jsonschema:"Ink coverage percentages"`
	CSS   string      `json:"css" jsonschema:"Display color as #rrggbb"`
}

// FractionInput defines the input for chroma_fraction tool.
type FractionInput struct {
	Fraction  string `json:"fraction" jsonschema:"Fraction as n/d or a bare integer"`
	Step      int    `json:"step,omitempty" jsonschema:"Rotation step index (default 0)"`
	BaseAngle *int   `json:"base_angle,omitempty" jsonschema:"Degrees per step (default from config, normally 60)"`
}

// FractionOutput defines the output for chroma_fraction tool.
type FractionOutput struct {
	Fraction string      `json:"fraction"`
	Digit    int         `json:"digit" jsonschema:"Signed digital root of the numerator"`
	Angle    int         `json:"angle" jsonschema:"Rotation in [0,360)"`
	CMYK     chroma.CMYK `json:"cmyk"`
	CSS      string      `json:"css"`
}

// CSSInput defines the input for chroma_css tool.
type CSSInput struct {
	C int `json:"c" jsonschema:"Cyan percentage; clamped to [0,100]"`
	M int `json:"m" jsonschema:"Magenta percentage; clamped to [0,100]"`
	Y int `json:"y" jsonschema:"Yellow percentage; clamped to [0,100]"`
	K int `json:"k" jsonschema:"Key percentage; clamped to [0,100]"`
}

// CSSOutput defines the output for chroma_css tool.
type CSSOutput struct {
	CMYK chroma.CMYK `json:"cmyk" jsonschema:"Clamped input"`
	CSS  string      `json:"css"`
}

// ParseInput defines the input for chroma_parse tool.
type ParseInput struct {
	Hex string `json:"hex" jsonschema:"Display color as #rrggbb or #rgb"`
}

// ParseOutput defines the output for chroma_parse tool.
type ParseOutput struct {
	CMYK chroma.CMYK `json:"cmyk"`
}

// VortexInput defines the input for chroma_vortex tool.
type VortexInput struct {
	Channel int `json:"channel" jsonschema:"Channel seed"`
}

// VortexOutput defines the output for chroma_vortex tool.
type VortexOutput struct {
	Channel int    `json:"channel"`
	Color   string `json:"color" jsonschema:"Vortex color as #RRGGBB"`
}

// FrequencyInput defines the input for chroma_frequency tool.
type FrequencyInput struct {
	Base       float64 `json:"base" jsonschema:"Base frequency"`
	Multiplier float64 `json:"multiplier"`
	Divisor    float64 `json:"divisor" jsonschema:"Must be non-zero"`
}

// FrequencyOutput defines the output for chroma_frequency tool.
type FrequencyOutput struct {
	Frequency float64 `json:"frequency"`
}

// WheelInput defines the input for chroma_wheel tool.
type WheelInput struct {
	Fraction  string `json:"fraction" jsonschema:"Fraction as n/d or a bare integer"`
	Steps     int    `json:"steps,omitempty" jsonschema:"Number of swatches (default from config, normally 6)"`
	BaseAngle *int   `json:"base_angle,omitempty" jsonschema:"Degrees per step (default from config, normally 60)"`
}

// WheelOutput defines the output for chroma_wheel tool.
type WheelOutput struct {
	Swatches []palette.Swatch `json:"swatches"`
}

// PaletteSaveInput defines the input for chroma_palette_save tool.
// Exactly one of Digit or Fraction must be set.
type PaletteSaveInput struct {
	Name      string `json:"name" jsonschema:"Unique swatch name"`
	Digit     *int   `json:"digit,omitempty" jsonschema:"Digit seed"`
	Angle     int    `json:"angle,omitempty" jsonschema:"Rotation for a digit seed"`
	Fraction  string `json:"fraction,omitempty" jsonschema:"Fraction seed as n/d"`
	Step      int    `json:"step,omitempty" jsonschema:"Rotation step for a fraction seed"`
	BaseAngle *int   `json:"base_angle,omitempty" jsonschema:"Degrees per step for a fraction seed"`
}

// PaletteSaveOutput defines the output for chroma_palette_save tool.
type PaletteSaveOutput struct {
	Swatch palette.Swatch `json:"swatch"`
}

// PaletteListInput defines the input for chroma_palette_list tool.
type PaletteListInput struct{}

// PaletteListOutput defines the output for chroma_palette_list tool.
type PaletteListOutput struct {
	Swatches []palette.Swatch `json:"swatches"`
	Count    int              `json:"count"`
}
