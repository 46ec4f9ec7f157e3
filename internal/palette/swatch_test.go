package palette

import (
	"errors"
	"strings"
	"testing"

	"github.com/nvandessel/chromaroot/internal/chroma"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name    string
		seed    Seed
		want    chroma.CMYK
		wantCSS string
	}{
		{
			name:    "digit seed",
			seed:    DigitSeed(7, 0),
			want:    chroma.CMYK{C: 80, M: 100},
			wantCSS: "#3300ff",
		},
		{
			name:    "fraction seed",
			seed:    FractionSeed(chroma.Fraction{Numerator: 7, Denominator: 4}, chroma.DefaultRotation()),
			want:    chroma.CMYK{C: 80, M: 100},
			wantCSS: "#3300ff",
		},
		{
			name:    "fraction seed without rotation uses default",
			seed:    Seed{Kind: SeedFraction, Fraction: &chroma.Fraction{Numerator: 5, Denominator: 2}},
			want:    chroma.CMYK{C: 100},
			wantCSS: "#00ffff",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sw, err := Derive("swatch", tt.seed)
			if err != nil {
				t.Fatalf("Derive() error = %v", err)
			}
			if sw.CMYK != tt.want {
				t.Errorf("CMYK = %+v, want %+v", sw.CMYK, tt.want)
			}
			if sw.CSS != tt.wantCSS {
				t.Errorf("CSS = %q, want %q", sw.CSS, tt.wantCSS)
			}
			if err := sw.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestDerive_Errors(t *testing.T) {
	tests := []struct {
		name    string
		swatch  string
		seed    Seed
		wantErr error
	}{
		{"zero denominator", "bad", FractionSeed(chroma.Fraction{Numerator: 1}, chroma.DefaultRotation()), chroma.ErrDivisionByZero},
		{"missing fraction", "bad", Seed{Kind: SeedFraction}, chroma.ErrInvalidInput},
		{"unknown kind", "bad", Seed{Kind: "hsl"}, chroma.ErrInvalidInput},
		{"empty name", "", DigitSeed(1, 0), chroma.ErrInvalidInput},
		{"padded name", " x ", DigitSeed(1, 0), chroma.ErrInvalidInput},
		{"long name", strings.Repeat("n", 65), DigitSeed(1, 0), chroma.ErrInvalidInput},
		{"bell and escape", "bad\x07name\x1b[31m", DigitSeed(3, 0), chroma.ErrInvalidInput},
		{"embedded newline", "deep\nviolet", DigitSeed(3, 0), chroma.ErrInvalidInput},
		{"C1 control", "amber\u0085", DigitSeed(1, 0), chroma.ErrInvalidInput},
		{"invalid utf-8", "amber\xff", DigitSeed(1, 0), chroma.ErrInvalidInput},
		{"multibyte over limit", strings.Repeat("é", 33), DigitSeed(1, 0), chroma.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Derive(tt.swatch, tt.seed)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Derive() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateName_Accepts(t *testing.T) {
	names := []string{
		"violet",
		"deep violet",
		"7/4@0",
		"bleu ciel é",
		strings.Repeat("n", 64),
		strings.Repeat("é", 32),
	}

	for _, name := range names {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) error = %v, want nil", name, err)
		}
	}
}

func TestSwatch_ValidateDetectsTampering(t *testing.T) {
	sw, err := Derive("violet", DigitSeed(7, 0))
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	sw.CSS = "#000000"
	if err := sw.Validate(); !errors.Is(err, chroma.ErrInvalidInput) {
		t.Errorf("Validate() error = %v, want ErrInvalidInput", err)
	}
}

func TestWheel(t *testing.T) {
	f := chroma.Fraction{Numerator: 1, Denominator: 1}
	swatches, err := Wheel(f, 6, 60)
	if err != nil {
		t.Fatalf("Wheel() error = %v", err)
	}
	if len(swatches) != 6 {
		t.Fatalf("len(Wheel()) = %d, want 6", len(swatches))
	}

	wantNames := []string{"1/1@0", "1/1@1", "1/1@2", "1/1@3", "1/1@4", "1/1@5"}
	for i, sw := range swatches {
		if sw.Name != wantNames[i] {
			t.Errorf("swatch[%d].Name = %q, want %q", i, sw.Name, wantNames[i])
		}
		want := chroma.DigitAngleToCMYK(1, i*60)
		if sw.CMYK != want {
			t.Errorf("swatch[%d].CMYK = %+v, want %+v", i, sw.CMYK, want)
		}
	}
}

func TestWheel_Errors(t *testing.T) {
	if _, err := Wheel(chroma.Fraction{Numerator: 1}, 6, 60); !errors.Is(err, chroma.ErrDivisionByZero) {
		t.Errorf("Wheel(1/0) error = %v, want ErrDivisionByZero", err)
	}
	for _, steps := range []int{0, -1, 361} {
		if _, err := Wheel(chroma.Fraction{Numerator: 1, Denominator: 1}, steps, 60); !errors.Is(err, chroma.ErrInvalidInput) {
			t.Errorf("Wheel(steps=%d) error = %v, want ErrInvalidInput", steps, err)
		}
	}
}

func TestSeed_String(t *testing.T) {
	if got := DigitSeed(3, 120).String(); got != "3@120" {
		t.Errorf("String() = %q, want 3@120", got)
	}
	got := FractionSeed(chroma.Fraction{Numerator: 7, Denominator: 4}, chroma.Rotation{Step: 2, BaseAngle: 60}).String()
	if got != "7/4@2x60" {
		t.Errorf("String() = %q, want 7/4@2x60", got)
	}
}
