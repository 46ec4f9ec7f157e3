// Package palette derives named swatches from color seeds.
package palette

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nvandessel/chromaroot/internal/chroma"
	"github.com/nvandessel/chromaroot/internal/constants"
)

// SeedKind identifies which core operation a seed feeds.
type SeedKind string

const (
	SeedDigit    SeedKind = "digit"    // DigitAngleToCMYK(digit, angle)
	SeedFraction SeedKind = "fraction" // FractionToCMYK(fraction, rotation)
)

// Seed is everything needed to recompute a swatch.
type Seed struct {
	Kind     SeedKind         `json:"kind" yaml:"kind"`
	Digit    int              `json:"digit,omitempty" yaml:"digit,omitempty"`
	Angle    int              `json:"angle,omitempty" yaml:"angle,omitempty"`
	Fraction *chroma.Fraction `json:"fraction,omitempty" yaml:"fraction,omitempty"`
	Rotation *chroma.Rotation `json:"rotation,omitempty" yaml:"rotation,omitempty"`
}

// DigitSeed builds a digit/angle seed.
func DigitSeed(digit, angle int) Seed {
	return Seed{Kind: SeedDigit, Digit: digit, Angle: angle}
}

// FractionSeed builds a fraction seed with an explicit rotation.
func FractionSeed(f chroma.Fraction, rot chroma.Rotation) Seed {
	return Seed{Kind: SeedFraction, Fraction: &f, Rotation: &rot}
}

// String renders the seed compactly, e.g. "7/4@0x60" or "3@120".
func (s Seed) String() string {
	switch s.Kind {
	case SeedFraction:
		rot := chroma.DefaultRotation()
		if s.Rotation != nil {
			rot = *s.Rotation
		}
		if s.Fraction == nil {
			return "fraction(?)"
		}
		return fmt.Sprintf("%s@%dx%d", s.Fraction, rot.Step, rot.BaseAngle)
	default:
		return fmt.Sprintf("%d@%d", s.Digit, s.Angle)
	}
}

// CMYK evaluates the seed.
func (s Seed) CMYK() (chroma.CMYK, error) {
	switch s.Kind {
	case SeedDigit:
		return chroma.DigitAngleToCMYK(s.Digit, s.Angle), nil
	case SeedFraction:
		if s.Fraction == nil {
			return chroma.CMYK{}, fmt.Errorf("fraction seed without fraction: %w", chroma.ErrInvalidInput)
		}
		rot := chroma.DefaultRotation()
		if s.Rotation != nil {
			rot = *s.Rotation
		}
		return chroma.FractionToCMYK(*s.Fraction, rot)
	default:
		return chroma.CMYK{}, fmt.Errorf("unknown seed kind %q: %w", s.Kind, chroma.ErrInvalidInput)
	}
}

// Swatch is a named, evaluated seed.
type Swatch struct {
	Name string      `json:"name" yaml:"name"`
	Seed Seed        `json:"seed" yaml:"seed"`
	CMYK chroma.CMYK `json:"cmyk" yaml:"cmyk"`
	CSS  string      `json:"css" yaml:"css"`
}

// Derive evaluates seed and names the result.
func Derive(name string, seed Seed) (Swatch, error) {
	if err := ValidateName(name); err != nil {
		return Swatch{}, err
	}

	cmyk, err := seed.CMYK()
	if err != nil {
		return Swatch{}, fmt.Errorf("deriving %q: %w", name, err)
	}

	return Swatch{
		Name: name,
		Seed: seed,
		CMYK: cmyk,
		CSS:  chroma.CMYKToCSS(cmyk),
	}, nil
}

// Validate recomputes the swatch from its seed and checks that the stored
// color matches.
func (s Swatch) Validate() error {
	fresh, err := Derive(s.Name, s.Seed)
	if err != nil {
		return err
	}
	if fresh.CMYK != s.CMYK || fresh.CSS != s.CSS {
		return fmt.Errorf("swatch %q: stored %s %s, seed gives %s %s: %w",
			s.Name, s.CMYK, s.CSS, fresh.CMYK, fresh.CSS, chroma.ErrInvalidInput)
	}
	return nil
}

// ValidateName rejects empty, oversized or whitespace-padded names, and names
// carrying control characters or invalid UTF-8. Length is counted in bytes.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("swatch name is required: %w", chroma.ErrInvalidInput)
	}
	if len(name) > constants.MaxSwatchNameLen {
		return fmt.Errorf("swatch name longer than %d bytes: %w", constants.MaxSwatchNameLen, chroma.ErrInvalidInput)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("swatch name is not valid UTF-8: %w", chroma.ErrInvalidInput)
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return fmt.Errorf("swatch name %q contains control characters: %w", name, chroma.ErrInvalidInput)
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("swatch name %q has surrounding whitespace: %w", name, chroma.ErrInvalidInput)
	}
	return nil
}

// Wheel rotates a fraction through steps 0..steps-1, baseAngle degrees apart.
func Wheel(f chroma.Fraction, steps, baseAngle int) ([]Swatch, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if steps <= 0 || steps > constants.MaxWheelSteps {
		return nil, fmt.Errorf("wheel steps must be in [1,%d], got %d: %w", constants.MaxWheelSteps, steps, chroma.ErrInvalidInput)
	}

	swatches := make([]Swatch, 0, steps)
	for step := 0; step < steps; step++ {
		name := fmt.Sprintf("%s@%d", f, step)
		sw, err := Derive(name, FractionSeed(f, chroma.Rotation{Step: step, BaseAngle: baseAngle}))
		if err != nil {
			return nil, err
		}
		swatches = append(swatches, sw)
	}
	return swatches, nil
}
