package chroma

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nvandessel/chromaroot/internal/constants"
	"github.com/nvandessel/chromaroot/internal/digitroot"
)

// Fraction is a rational color seed.
type Fraction struct {
	Numerator   int `json:"numerator" yaml:"numerator"`
	Denominator int `json:"denominator" yaml:"denominator"`
}

// String renders f as "n/d".
func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// Validate rejects fractions with a zero denominator, 0/0 included.
func (f Fraction) Validate() error {
	if f.Denominator == 0 {
		return fmt.Errorf("fraction %s: %w", f, ErrDivisionByZero)
	}
	return nil
}

// Sign is the sign of numerator*denominator, or +1 when the product is zero.
func (f Fraction) Sign() int {
	if f.Numerator == 0 || f.Denominator == 0 {
		return 1
	}
	if (f.Numerator < 0) != (f.Denominator < 0) {
		return -1
	}
	return 1
}

// Digit is the signed digital root of the numerator.
func (f Fraction) Digit() int {
	return f.Sign() * digitroot.Of(f.Numerator)
}

// ParseFraction accepts "n/d" or a bare integer "n" (read as n/1).
func ParseFraction(s string) (Fraction, error) {
	s = strings.TrimSpace(s)
	numText, denText, hasSlash := strings.Cut(s, "/")

	num, err := strconv.Atoi(strings.TrimSpace(numText))
	if err != nil {
		return Fraction{}, fmt.Errorf("parsing numerator of %q: %w", s, ErrInvalidInput)
	}

	den := 1
	if hasSlash {
		den, err = strconv.Atoi(strings.TrimSpace(denText))
		if err != nil {
			return Fraction{}, fmt.Errorf("parsing denominator of %q: %w", s, ErrInvalidInput)
		}
	}

	return Fraction{Numerator: num, Denominator: den}, nil
}

// Rotation selects how far a fraction's hue is turned.
type Rotation struct {
	// Step is the rotation index; negative steps turn backwards.
	Step int `json:"step" yaml:"step"`

	// BaseAngle is the number of degrees per step.
	BaseAngle int `json:"base_angle" yaml:"base_angle"`
}

// DefaultRotation is step 0 with 60° per step.
func DefaultRotation() Rotation {
	return Rotation{Step: 0, BaseAngle: constants.DefaultBaseAngle}
}

// Angle returns the rotation in [0,360).
func (r Rotation) Angle() int {
	return StepAngle(r.Step, r.BaseAngle)
}

// StepAngle returns step*baseAngle folded into [0,360).
// Both factors are reduced first so the product cannot overflow.
func StepAngle(step, baseAngle int) int {
	return NormalizeAngle((step % constants.FullTurn) * (baseAngle % constants.FullTurn))
}

// FractionToCMYK maps a fraction and a rotation to a print color.
func FractionToCMYK(f Fraction, rot Rotation) (CMYK, error) {
	if err := f.Validate(); err != nil {
		return CMYK{}, err
	}
	return DigitAngleToCMYK(f.Digit(), rot.Angle()), nil
}
